// ABOUTME: Goal model and GoalKind enum for progress tracking.
// ABOUTME: Defines how each logged activity contributes to a goal.
package models

import (
	"fmt"
	"math"
	"time"
)

// GoalKind is the closed set of goal kinds.
type GoalKind string

const (
	GoalCalories GoalKind = "calories"
	GoalDistance GoalKind = "distance"
	GoalWorkouts GoalKind = "workouts"
)

// AllGoalKinds lists every valid goal kind.
var AllGoalKinds = []GoalKind{GoalCalories, GoalDistance, GoalWorkouts}

// IsValidGoalKind checks if a string is a valid goal kind.
func IsValidGoalKind(s string) bool {
	for _, k := range AllGoalKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Unit returns the display unit for the kind.
func (k GoalKind) Unit() string {
	switch k {
	case GoalCalories:
		return "kcal"
	case GoalDistance:
		return "km"
	case GoalWorkouts:
		return "sessions"
	}
	panic(fmt.Sprintf("models: no unit for goal kind %q", string(k)))
}

// Goal is a target the user works toward. Completed is monotonic: progress
// changes never flip it back to false.
type Goal struct {
	ID        string     `json:"id" yaml:"id"`
	Kind      GoalKind   `json:"type" yaml:"type"`
	Target    float64    `json:"target" yaml:"target"`
	Current   float64    `json:"current" yaml:"current"`
	Unit      string     `json:"unit" yaml:"unit"`
	Deadline  *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Completed bool       `json:"completed" yaml:"completed"`
}

// Contribution returns how much an activity moves this goal. The second
// result is false when the activity does not count toward the goal.
func (g Goal) Contribution(a Activity) (float64, bool) {
	switch g.Kind {
	case GoalCalories:
		return float64(a.Calories), true
	case GoalDistance:
		if a.DistanceKm == nil {
			return 0, false
		}
		return *a.DistanceKm, true
	case GoalWorkouts:
		return 1, true
	}
	return 0, false
}

// Progress returns the goal's completion percentage, clamped to [0, 100].
func (g Goal) Progress() float64 {
	return Progress(g.Current, g.Target)
}

// DeadlineStatus describes the time left before the deadline.
func (g Goal) DeadlineStatus(now time.Time) string {
	if g.Deadline == nil {
		return "No deadline"
	}
	if g.Deadline.Before(now) {
		return "Passed deadline"
	}
	days := int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
	if days == 1 {
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", days)
}

// Progress returns current/target as a percentage clamped to [0, 100].
func Progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := current / target * 100
	return math.Min(100, math.Max(0, p))
}

// GoalInput is what a caller supplies to create a goal.
type GoalInput struct {
	Kind     GoalKind
	Target   float64
	Unit     string
	Deadline *time.Time
}

// NewGoalInput creates a goal input using the kind's default unit.
func NewGoalInput(kind GoalKind, target float64) GoalInput {
	in := GoalInput{Kind: kind, Target: target}
	if IsValidGoalKind(string(kind)) {
		in.Unit = kind.Unit()
	}
	return in
}

// WithDeadline sets the goal deadline.
func (in GoalInput) WithDeadline(t time.Time) GoalInput {
	in.Deadline = &t
	return in
}

// Validate rejects goals with unknown kinds or non-positive targets.
func (in GoalInput) Validate() error {
	if !IsValidGoalKind(string(in.Kind)) {
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidInput, in.Kind)
	}
	if !positive(in.Target) {
		return fmt.Errorf("%w: target must be positive", ErrInvalidInput)
	}
	return nil
}

// GoalUpdate holds the fields to merge into an existing goal. Nil fields
// are left untouched. Completion is only set through CompleteGoal.
type GoalUpdate struct {
	Kind     *GoalKind
	Target   *float64
	Current  *float64
	Unit     *string
	Deadline *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u GoalUpdate) IsEmpty() bool {
	return u.Kind == nil && u.Target == nil && u.Current == nil && u.Unit == nil && u.Deadline == nil
}

// Validate checks the fields that are present.
func (u GoalUpdate) Validate() error {
	if u.Kind != nil && !IsValidGoalKind(string(*u.Kind)) {
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidInput, *u.Kind)
	}
	if u.Target != nil && !positive(*u.Target) {
		return fmt.Errorf("%w: target must be positive", ErrInvalidInput)
	}
	if u.Current != nil && (*u.Current < 0 || math.IsNaN(*u.Current) || math.IsInf(*u.Current, 1)) {
		return fmt.Errorf("%w: current must not be negative", ErrInvalidInput)
	}
	return nil
}

// Apply merges the update into g. A new kind without an explicit unit
// takes the kind's default unit.
func (u GoalUpdate) Apply(g *Goal) {
	if u.Kind != nil {
		if *u.Kind != g.Kind && u.Unit == nil {
			g.Unit = u.Kind.Unit()
		}
		g.Kind = *u.Kind
	}
	if u.Target != nil {
		g.Target = *u.Target
	}
	if u.Current != nil {
		g.Current = *u.Current
	}
	if u.Unit != nil {
		g.Unit = *u.Unit
	}
	if u.Deadline != nil {
		d := *u.Deadline
		g.Deadline = &d
	}
}
