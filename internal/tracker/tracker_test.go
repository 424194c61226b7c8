// ABOUTME: Tests for the Tracker state store.
// ABOUTME: Verifies goal progress, weekly totals and no-op semantics.
package tracker

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	n := 0
	return New(models.EmptyState(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		}),
	)
}

func activity(kind models.ActivityKind, calories int, date time.Time) models.ActivityInput {
	return models.NewActivityInput(kind, 30, date).WithCalories(calories)
}

func TestAddActivityPrependsAndAssignsID(t *testing.T) {
	tr := newTestTracker(t)

	a1 := tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow))
	a2 := tr.AddActivity(activity(models.ActivityYoga, 100, fixedNow))

	require.NotEmpty(t, a1.ID)
	require.NotEqual(t, a1.ID, a2.ID)

	all := tr.Activities()
	require.Len(t, all, 2)
	assert.Equal(t, a2.ID, all[0].ID, "newest insert first")
	assert.Equal(t, a1.ID, all[1].ID)
}

func TestAddActivityUpdatesGoalsByKind(t *testing.T) {
	tr := newTestTracker(t)
	cal := tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1000))
	dist := tr.AddGoal(models.NewGoalInput(models.GoalDistance, 50))
	work := tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 3))

	tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow).WithDistance(5))
	tr.AddActivity(activity(models.ActivityYoga, 100, fixedNow))

	g, _ := tr.Goal(cal.ID)
	assert.Equal(t, 400.0, g.Current)
	g, _ = tr.Goal(dist.ID)
	assert.Equal(t, 5.0, g.Current, "activity without distance is skipped")
	g, _ = tr.Goal(work.ID)
	assert.Equal(t, 2.0, g.Current)
	assert.False(t, g.Completed)
}

func TestGoalCompletionIsMonotonic(t *testing.T) {
	tr := newTestTracker(t)
	goal := tr.AddGoal(models.GoalInput{Kind: models.GoalCalories, Target: 1000})

	tr.AddActivity(activity(models.ActivityRunning, 400, fixedNow))
	g, _ := tr.Goal(goal.ID)
	assert.Equal(t, 400.0, g.Current)
	assert.False(t, g.Completed)

	second := tr.AddActivity(activity(models.ActivityCycling, 700, fixedNow))
	g, _ = tr.Goal(goal.ID)
	assert.Equal(t, 1100.0, g.Current)
	assert.True(t, g.Completed)

	_, ok := tr.DeleteActivity(second.ID)
	require.True(t, ok)
	g, _ = tr.Goal(goal.ID)
	assert.True(t, g.Completed, "deleting must not un-complete a goal")
	assert.Equal(t, 1100.0, g.Current, "completed goals keep their progress")
	assert.Equal(t, "kcal", g.Unit)
}

func TestCompletedGoalIgnoresFurtherActivities(t *testing.T) {
	tr := newTestTracker(t)
	goal := tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 1))

	tr.AddActivity(activity(models.ActivityRunning, 100, fixedNow))
	tr.AddActivity(activity(models.ActivityRunning, 100, fixedNow))

	g, _ := tr.Goal(goal.ID)
	assert.True(t, g.Completed)
	assert.Equal(t, 1.0, g.Current)
}

func TestDeleteActivityClampsAtZero(t *testing.T) {
	tr := newTestTracker(t)
	a := tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow).WithDistance(5))

	// goals created after the activity start at zero
	cal := tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1000))
	dist := tr.AddGoal(models.NewGoalInput(models.GoalDistance, 10))

	_, ok := tr.DeleteActivity(a.ID)
	require.True(t, ok)

	g, _ := tr.Goal(cal.ID)
	assert.Equal(t, 0.0, g.Current)
	g, _ = tr.Goal(dist.ID)
	assert.Equal(t, 0.0, g.Current)
	assert.Equal(t, 0, tr.Weekly()[fixedNow.Weekday()])
}

func TestDeleteMissingActivityIsNoop(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1000))
	tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow))

	notified := 0
	tr.Subscribe(func(models.State) { notified++ })

	before := tr.Snapshot()
	_, ok := tr.DeleteActivity("nope")
	assert.False(t, ok)
	assert.Equal(t, before, tr.Snapshot())
	assert.Zero(t, notified, "no-op must not notify observers")
}

func TestWeeklyUsesActivityWeekday(t *testing.T) {
	tr := newTestTracker(t)
	monday := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)

	a := tr.AddActivity(activity(models.ActivityRunning, 300, monday))
	tr.AddActivity(activity(models.ActivityYoga, 100, fixedNow))

	w := tr.Weekly()
	assert.Equal(t, 300, w[time.Monday])
	assert.Equal(t, 100, w[time.Wednesday])

	tr.DeleteActivity(a.ID)
	assert.Equal(t, 0, tr.Weekly()[time.Monday])
}

func TestWeeklyNeverNegative(t *testing.T) {
	state := models.EmptyState()
	state.Activities = []models.Activity{{ID: "x", Kind: models.ActivityRunning, Calories: 500, Date: fixedNow}}
	state.Weekly[fixedNow.Weekday()] = 100

	tr := New(state, WithClock(func() time.Time { return fixedNow }))
	tr.DeleteActivity("x")
	assert.Equal(t, 0, tr.Weekly()[fixedNow.Weekday()])
}

func TestCompleteGoal(t *testing.T) {
	tr := newTestTracker(t)
	goal := tr.AddGoal(models.NewGoalInput(models.GoalDistance, 100))

	g, ok := tr.CompleteGoal(goal.ID)
	require.True(t, ok)
	assert.True(t, g.Completed)
	assert.Equal(t, 0.0, g.Current)

	a := tr.AddActivity(activity(models.ActivityRunning, 100, fixedNow).WithDistance(3))
	tr.DeleteActivity(a.ID)
	g, _ = tr.Goal(goal.ID)
	assert.True(t, g.Completed)
	assert.Equal(t, 0.0, g.Current, "completed goals do not move")

	_, ok = tr.CompleteGoal("missing")
	assert.False(t, ok)
}

func TestUpdateGoal(t *testing.T) {
	tr := newTestTracker(t)
	goal := tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1000))

	target := 500.0
	unit := "cal"
	g, ok := tr.UpdateGoal(goal.ID, models.GoalUpdate{Target: &target, Unit: &unit})
	require.True(t, ok)
	assert.Equal(t, 500.0, g.Target)
	assert.Equal(t, "cal", g.Unit)
	assert.Equal(t, models.GoalCalories, g.Kind)

	before := tr.Snapshot()
	_, ok = tr.UpdateGoal("missing", models.GoalUpdate{Target: &target})
	assert.False(t, ok)
	assert.Equal(t, before, tr.Snapshot())
}

func TestDeleteGoal(t *testing.T) {
	tr := newTestTracker(t)
	g1 := tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1000))
	g2 := tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 5))

	assert.True(t, tr.DeleteGoal(g1.ID))
	assert.False(t, tr.DeleteGoal(g1.ID))

	goals := tr.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, g2.ID, goals[0].ID)
}

func TestAddGoalDefaultsUnit(t *testing.T) {
	tr := newTestTracker(t)
	g := tr.AddGoal(models.GoalInput{Kind: models.GoalWorkouts, Target: 12})
	assert.Equal(t, "sessions", g.Unit)
	assert.Zero(t, g.Current)
	assert.False(t, g.Completed)
}

func TestUpdateUserStats(t *testing.T) {
	tr := newTestTracker(t)

	w := 50.0
	h := 160.0
	s := tr.UpdateUserStats(models.StatsUpdate{WeightKg: &w, HeightCm: &h})
	assert.Equal(t, 19.5, s.BMI)

	w = 70
	h = 170
	s = tr.UpdateUserStats(models.StatsUpdate{WeightKg: &w})
	assert.Equal(t, models.CalculateBMI(70, 160), s.BMI)
	s = tr.UpdateUserStats(models.StatsUpdate{HeightCm: &h})
	assert.Equal(t, 24.2, s.BMI)
}

func TestTodaysCalories(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow.Add(-2*time.Hour)))
	tr.AddActivity(activity(models.ActivityYoga, 150, fixedNow.Add(-24*time.Hour)))
	tr.AddActivity(activity(models.ActivityCycling, 200, fixedNow.Add(3*time.Hour)))

	assert.Equal(t, 500, tr.TodaysCalories())
}

func TestTodaysCaloriesUsesLocalZone(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 11, 22, 0, 0, 0, zone)
	tr := New(nil, WithClock(func() time.Time { return now }))

	// 02:00 UTC on the 12th is still the 11th at UTC-5
	tr.AddActivity(activity(models.ActivityRunning, 250, time.Date(2025, 6, 12, 2, 0, 0, 0, time.UTC)))
	assert.Equal(t, 250, tr.TodaysCalories())
}

func TestObserversReceiveSnapshots(t *testing.T) {
	tr := newTestTracker(t)
	var got []models.State
	tr.Subscribe(func(s models.State) { got = append(got, s) })

	tr.AddActivity(activity(models.ActivityRunning, 300, fixedNow))
	goal := tr.AddGoal(models.NewGoalInput(models.GoalCalories, 100))
	tr.CompleteGoal(goal.ID)
	tr.UpdateUserStats(models.StatsUpdate{})

	require.Len(t, got, 3)
	assert.Len(t, got[0].Activities, 1)
	assert.Empty(t, got[0].Goals)
	assert.True(t, got[2].Goals[0].Completed)

	// snapshots are detached from the tracker
	got[2].Goals[0].Target = 1
	g, _ := tr.Goal(goal.ID)
	assert.Equal(t, 100.0, g.Target)
}

func TestResolveIDs(t *testing.T) {
	tr := New(nil, WithIDGenerator(func() func() string {
		ids := []string{"abc111", "abc222", "def333"}
		i := 0
		return func() string { i++; return ids[i-1] }
	}()))
	tr.AddActivity(activity(models.ActivityRunning, 1, fixedNow))
	tr.AddActivity(activity(models.ActivityRunning, 1, fixedNow))
	tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 1))

	id, err := tr.ResolveActivityID("abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc111", id)

	_, err = tr.ResolveActivityID("abc")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = tr.ResolveActivityID("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	id, err = tr.ResolveGoalID("def")
	require.NoError(t, err)
	assert.Equal(t, "def333", id)
}

func TestListActivitiesSortsAndFilters(t *testing.T) {
	tr := newTestTracker(t)
	old := tr.AddActivity(activity(models.ActivityRunning, 1, fixedNow.AddDate(0, 0, -3)))
	mid := tr.AddActivity(activity(models.ActivityYoga, 1, fixedNow.AddDate(0, 0, -1)))
	// inserted last but dated earliest
	tr.AddActivity(activity(models.ActivityRunning, 1, fixedNow.AddDate(0, 0, -10)))
	newest := tr.AddActivity(activity(models.ActivityRunning, 1, fixedNow))

	recent := tr.RecentActivities(2)
	require.Len(t, recent, 2)
	assert.Equal(t, newest.ID, recent[0].ID)
	assert.Equal(t, mid.ID, recent[1].ID)

	running := models.ActivityRunning
	runs := tr.ListActivities(&running, 0)
	require.Len(t, runs, 3)
	assert.Equal(t, old.ID, runs[1].ID)
}

func TestCalendarAndSummary(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddActivity(models.NewActivityInput(models.ActivityRunning, 30, fixedNow).WithDistance(5).WithCalories(300))
	tr.AddActivity(models.NewActivityInput(models.ActivityYoga, 45, fixedNow).WithCalories(150))
	tr.AddActivity(models.NewActivityInput(models.ActivityCycling, 60, fixedNow.AddDate(0, -1, 0)).WithDistance(20).WithCalories(500))

	month := tr.CalendarMonth(2025, time.June)
	assert.Len(t, month[11], 2)
	assert.Len(t, month, 1)

	assert.Len(t, tr.ActivitiesOn(fixedNow), 2)
	assert.Empty(t, tr.ActivitiesOn(fixedNow.AddDate(0, 0, 1)))

	s := tr.Summary()
	assert.Equal(t, 3, s.Activities)
	assert.Equal(t, 135, s.DurationMinutes)
	assert.InDelta(t, 25.0, s.DistanceKm, 1e-9)
	assert.Equal(t, 950, s.Calories)
}

func TestRebuildWeekly(t *testing.T) {
	state := models.EmptyState()
	state.Activities = []models.Activity{
		{ID: "a", Calories: 200, Date: fixedNow},
		{ID: "b", Calories: 100, Date: fixedNow.AddDate(0, 0, -7)},
	}
	state.Weekly = models.WeeklyActivity{9, 9, 9, 9, 9, 9, 9}

	tr := New(state, WithClock(func() time.Time { return fixedNow }))
	w := tr.RebuildWeekly()
	assert.Equal(t, models.WeeklyActivity{0, 0, 0, 300, 0, 0, 0}, w)
}

func TestDemoStateIsConsistent(t *testing.T) {
	s := DemoState(fixedNow)
	require.Len(t, s.Activities, 4)
	require.Len(t, s.Goals, 3)

	assert.Equal(t, 1100.0, s.Goals[0].Current)
	assert.Equal(t, 20.0, s.Goals[1].Current)
	assert.Equal(t, 4.0, s.Goals[2].Current)
	assert.Equal(t, 1100, s.Weekly.Total())

	tr := New(s, WithClock(func() time.Time { return fixedNow }))
	assert.Equal(t, 300, tr.TodaysCalories())
}

// TestRandomSequencesKeepInvariants drives random add/delete sequences and
// checks goal progress and weekly totals against a recomputation.
func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		tr := newTestTracker(t)
		tr.AddGoal(models.NewGoalInput(models.GoalCalories, 1e9))
		tr.AddGoal(models.NewGoalInput(models.GoalDistance, 1e9))
		tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 1e9))
		tr.AddGoal(models.NewGoalInput(models.GoalWorkouts, 5))

		for step := 0; step < 60; step++ {
			acts := tr.Activities()
			if len(acts) > 0 && rng.Intn(3) == 0 {
				victim := acts[rng.Intn(len(acts))]
				_, ok := tr.DeleteActivity(victim.ID)
				require.True(t, ok)
			} else if rng.Intn(10) == 0 {
				tr.DeleteActivity("missing")
			} else {
				kind := models.AllActivityKinds[rng.Intn(len(models.AllActivityKinds))]
				date := fixedNow.AddDate(0, 0, -rng.Intn(14))
				in := activity(kind, rng.Intn(800), date)
				if rng.Intn(2) == 0 {
					in = in.WithDistance(float64(rng.Intn(200)+1) / 10)
				}
				tr.AddActivity(in)
			}
			assertInvariants(t, tr)
		}
	}
}

func assertInvariants(t *testing.T, tr *Tracker) {
	t.Helper()
	acts := tr.Activities()

	var weekly models.WeeklyActivity
	for _, a := range acts {
		weekly[a.Date.Weekday()] += a.Calories
	}
	require.Equal(t, weekly, tr.Weekly())

	for _, g := range tr.Goals() {
		if g.Completed {
			continue
		}
		sum := 0.0
		for _, a := range acts {
			if c, ok := g.Contribution(a); ok {
				sum += c
			}
		}
		require.InDelta(t, sum, g.Current, 1e-6, "goal %s", g.Kind)
	}
}

func TestDashboard(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddGoal(models.GoalInput{Kind: models.GoalCalories, Target: 1000})
	for i := 0; i < 7; i++ {
		tr.AddActivity(activity(models.ActivityRunning, 100, fixedNow.Add(-time.Duration(i)*time.Minute)))
	}

	d := tr.Dashboard()
	assert.Equal(t, 700, d.Today)
	assert.Equal(t, 700, d.Weekly.Total())
	assert.Equal(t, 7, d.Summary.Activities)
	assert.Equal(t, "Normal weight", d.BMICategory)
	require.Len(t, d.Goals, 1)
	assert.Equal(t, 700.0, d.Goals[0].Current)
	require.Len(t, d.Recent, 5)
	assert.Equal(t, fixedNow, d.Recent[0].Date)
	assert.Equal(t, time.Wednesday, d.CurrentWeekday)
	assert.Len(t, tr.Activities(), 7, "building the dashboard leaves state alone")
}

func TestDashboardIsConsistentUnderWrites(t *testing.T) {
	tr := New(models.EmptyState(), WithClock(func() time.Time { return fixedNow }))
	tr.AddGoal(models.GoalInput{Kind: models.GoalCalories, Target: 1e9})

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				tr.AddActivity(activity(models.ActivityWalking, 10, fixedNow))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		d := tr.Dashboard()
		require.Equal(t, d.Summary.Calories, d.Today)
		require.Equal(t, d.Summary.Calories, d.Weekly.Total())
		require.Equal(t, float64(d.Summary.Calories), d.Goals[0].Current)
		select {
		case <-done:
			assert.Equal(t, 2000, tr.Dashboard().Today)
			return
		default:
		}
	}
}
