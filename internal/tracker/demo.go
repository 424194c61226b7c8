// ABOUTME: Demo dataset for trying the tracker without entering data.
// ABOUTME: Built through the Tracker so goal progress and weekly totals agree.
package tracker

import (
	"time"

	"github.com/harperreed/fitness/internal/models"
)

// DemoState returns a small sample dataset relative to now: three goals and
// four activities over the last three days.
func DemoState(now time.Time, opts ...Option) *models.State {
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)
	t := New(models.EmptyState(), opts...)

	t.AddGoal(models.NewGoalInput(models.GoalCalories, 10000).WithDeadline(now.AddDate(0, 0, 7)))
	t.AddGoal(models.NewGoalInput(models.GoalDistance, 100).WithDeadline(now.AddDate(0, 0, 14)))
	t.AddGoal(models.NewGoalInput(models.GoalWorkouts, 12).WithDeadline(now.AddDate(0, 0, 30)))

	twoDaysAgo := now.AddDate(0, 0, -2)
	inputs := []models.ActivityInput{
		models.NewActivityInput(models.ActivityYoga, 45, twoDaysAgo).
			WithCalories(150).WithNotes("Evening relaxation"),
		models.NewActivityInput(models.ActivityWeightlifting, 60, twoDaysAgo).
			WithCalories(250).WithNotes("Upper body workout"),
		models.NewActivityInput(models.ActivityCycling, 45, now.AddDate(0, 0, -1)).
			WithDistance(15).WithCalories(400).WithNotes("Evening ride"),
		models.NewActivityInput(models.ActivityRunning, 30, now).
			WithDistance(5).WithCalories(300).WithNotes("Morning run in the park"),
	}
	for _, in := range inputs {
		t.AddActivity(in)
	}

	s := t.Snapshot()
	return &s
}
