// ABOUTME: User stats and derived reads on the Tracker.
// ABOUTME: Today's calories, summaries and calendar views are computed on demand.
package tracker

import (
	"time"

	"github.com/harperreed/fitness/internal/models"
)

// UpdateUserStats merges weight and height. BMI is recomputed from the
// resulting measurements whenever either one is given.
func (t *Tracker) UpdateUserStats(upd models.StatsUpdate) models.UserStats {
	var out models.UserStats
	t.mutate(func() bool {
		upd.Apply(&t.state.Stats)
		out = t.state.Stats
		return upd.WeightKg != nil || upd.HeightCm != nil
	})
	return out
}

// UserStats returns the current body measurements.
func (t *Tracker) UserStats() models.UserStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Stats
}

// Weekly returns the calories-by-weekday totals.
func (t *Tracker) Weekly() models.WeeklyActivity {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Weekly
}

// RebuildWeekly recomputes the weekday totals from the activities present.
func (t *Tracker) RebuildWeekly() models.WeeklyActivity {
	var out models.WeeklyActivity
	t.mutate(func() bool {
		var w models.WeeklyActivity
		for _, a := range t.state.Activities {
			w.Add(t.weekday(a.Date), a.Calories)
		}
		changed := w != t.state.Weekly
		t.state.Weekly = w
		out = w
		return changed
	})
	return out
}

// TodaysCalories sums the calories of activities dated on the current
// local calendar day.
func (t *Tracker) TodaysCalories() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.todaysCalories()
}

func (t *Tracker) todaysCalories() int {
	today := t.today()
	total := 0
	for _, a := range t.state.Activities {
		if t.localDay(a.Date).Equal(today) {
			total += a.Calories
		}
	}
	return total
}

// Summary holds all-time activity totals.
type Summary struct {
	Activities      int     `json:"activities"`
	DurationMinutes int     `json:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km"`
	Calories        int     `json:"calories"`
}

// Summary totals every activity.
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.summary()
}

func (t *Tracker) summary() Summary {
	var s Summary
	for _, a := range t.state.Activities {
		s.Activities++
		s.DurationMinutes += a.DurationMinutes
		s.DistanceKm += a.Distance()
		s.Calories += a.Calories
	}
	return s
}

// ActivitiesOn returns the activities dated on day's local calendar day.
func (t *Tracker) ActivitiesOn(day time.Time) []models.Activity {
	t.mu.RLock()
	defer t.mu.RUnlock()
	want := t.localDay(day)
	var out []models.Activity
	for _, a := range t.state.Activities {
		if t.localDay(a.Date).Equal(want) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// CalendarMonth groups a month's activities by day of month.
func (t *Tracker) CalendarMonth(year int, month time.Month) map[int][]models.Activity {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[int][]models.Activity)
	for _, a := range t.state.Activities {
		d := t.localDay(a.Date)
		if d.Year() == year && d.Month() == month {
			out[d.Day()] = append(out[d.Day()], a.Clone())
		}
	}
	return out
}

// Dashboard is everything the dashboard view shows at once.
type Dashboard struct {
	Today          int                   `json:"todays_calories"`
	Weekly         models.WeeklyActivity `json:"weekly_activity"`
	Summary        Summary               `json:"summary"`
	Stats          models.UserStats      `json:"user_stats"`
	BMICategory    string                `json:"bmi_category"`
	Goals          []models.Goal         `json:"goals"`
	Recent         []models.Activity     `json:"recent_activities"`
	GeneratedAt    time.Time             `json:"generated_at"`
	CurrentWeekday time.Weekday          `json:"current_weekday"`
}

// Dashboard collects today's calories, weekly totals, summary, stats,
// goals and the five most recent activities. Every field is read under
// one lock so the parts agree with each other.
func (t *Tracker) Dashboard() Dashboard {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := t.state.Clone()
	now := t.now()
	return Dashboard{
		Today:          t.todaysCalories(),
		Weekly:         snap.Weekly,
		Summary:        t.summary(),
		Stats:          snap.Stats,
		BMICategory:    models.BMICategory(snap.Stats.BMI),
		Goals:          snap.Goals,
		Recent:         filterActivities(snap.Activities, nil, 5),
		GeneratedAt:    now,
		CurrentWeekday: now.Weekday(),
	}
}
