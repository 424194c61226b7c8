// ABOUTME: Tests for Goal model, GoalKind units and progress helpers.
// ABOUTME: Covers contributions, deadlines, updates and validation.
package models

import (
	"math"
	"testing"
	"time"
)

func TestEveryGoalKindHasUnit(t *testing.T) {
	want := map[GoalKind]string{
		GoalCalories: "kcal",
		GoalDistance: "km",
		GoalWorkouts: "sessions",
	}
	for _, k := range AllGoalKinds {
		if got := k.Unit(); got != want[k] {
			t.Errorf("GoalKind %s Unit() = %q, want %q", k, got, want[k])
		}
	}
}

func TestGoalContribution(t *testing.T) {
	dist := 5.0
	withDistance := Activity{Kind: ActivityRunning, Calories: 300, DistanceKm: &dist}
	noDistance := Activity{Kind: ActivityYoga, Calories: 150}

	tests := []struct {
		name     string
		kind     GoalKind
		activity Activity
		want     float64
		counts   bool
	}{
		{"calories", GoalCalories, withDistance, 300, true},
		{"distance", GoalDistance, withDistance, 5, true},
		{"distance missing", GoalDistance, noDistance, 0, false},
		{"workouts", GoalWorkouts, noDistance, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{Kind: tt.kind}
			got, ok := g.Contribution(tt.activity)
			if ok != tt.counts {
				t.Fatalf("counts = %v, want %v", ok, tt.counts)
			}
			if got != tt.want {
				t.Errorf("Contribution() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		current, target, want float64
	}{
		{0, 100, 0},
		{45, 100, 45},
		{150, 100, 100},
		{-10, 100, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Progress(tt.current, tt.target); got != tt.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestDeadlineStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	tomorrow := now.Add(20 * time.Hour)
	week := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		want     string
	}{
		{"none", nil, "No deadline"},
		{"passed", &past, "Passed deadline"},
		{"one day", &tomorrow, "1 day remaining"},
		{"a week", &week, "7 days remaining"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{Deadline: tt.deadline}
			if got := g.DeadlineStatus(now); got != tt.want {
				t.Errorf("DeadlineStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGoalInputUsesKindUnit(t *testing.T) {
	in := NewGoalInput(GoalDistance, 100)
	if in.Unit != "km" {
		t.Errorf("Unit = %q, want km", in.Unit)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := NewGoalInput("steps", 100)
	if bad.Unit != "" {
		t.Error("expected no unit for unknown kind")
	}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
	if err := NewGoalInput(GoalCalories, 0).Validate(); err == nil {
		t.Error("expected error for zero target")
	}
}

func TestGoalUpdateApply(t *testing.T) {
	g := Goal{Kind: GoalCalories, Target: 1000, Current: 200, Unit: "kcal"}

	target := 2000.0
	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	upd := GoalUpdate{Target: &target, Deadline: &deadline}
	if upd.IsEmpty() {
		t.Fatal("expected non-empty update")
	}
	upd.Apply(&g)

	if g.Target != 2000 {
		t.Errorf("Target = %f, want 2000", g.Target)
	}
	if g.Current != 200 {
		t.Errorf("Current changed to %f", g.Current)
	}
	if g.Deadline == nil || !g.Deadline.Equal(deadline) {
		t.Error("expected deadline to be set")
	}
	if !(GoalUpdate{}).IsEmpty() {
		t.Error("expected zero update to be empty")
	}

	neg := -1.0
	if err := (GoalUpdate{Current: &neg}).Validate(); err == nil {
		t.Error("expected error for negative current")
	}
}

func TestGoalUpdateKindChangeResetsUnit(t *testing.T) {
	distance := GoalDistance
	custom := "miles"

	tests := []struct {
		name string
		upd  GoalUpdate
		want string
	}{
		{"new kind takes its unit", GoalUpdate{Kind: &distance}, "km"},
		{"explicit unit wins", GoalUpdate{Kind: &distance, Unit: &custom}, "miles"},
		{"unit alone", GoalUpdate{Unit: &custom}, "miles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{Kind: GoalCalories, Target: 1000, Unit: "kcal"}
			tt.upd.Apply(&g)
			if g.Unit != tt.want {
				t.Errorf("Unit = %q, want %q", g.Unit, tt.want)
			}
		})
	}

	// Same kind keeps a custom unit.
	calories := GoalCalories
	g := Goal{Kind: GoalCalories, Unit: "Cal"}
	GoalUpdate{Kind: &calories}.Apply(&g)
	if g.Unit != "Cal" {
		t.Errorf("Unit = %q, want Cal", g.Unit)
	}
}

func TestGoalValidateRejectsNonFinite(t *testing.T) {
	nan, inf, negInf := math.NaN(), math.Inf(1), math.Inf(-1)

	tests := []struct {
		name string
		err  error
	}{
		{"input target NaN", GoalInput{Kind: GoalCalories, Target: nan}.Validate()},
		{"input target +Inf", GoalInput{Kind: GoalCalories, Target: inf}.Validate()},
		{"input target -Inf", GoalInput{Kind: GoalCalories, Target: negInf}.Validate()},
		{"update target NaN", GoalUpdate{Target: &nan}.Validate()},
		{"update target +Inf", GoalUpdate{Target: &inf}.Validate()},
		{"update current NaN", GoalUpdate{Current: &nan}.Validate()},
		{"update current +Inf", GoalUpdate{Current: &inf}.Validate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
