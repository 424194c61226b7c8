// ABOUTME: State aggregates the four persisted fitness records.
// ABOUTME: WeeklyActivity tracks calories per weekday with zero clamping.
package models

import "time"

// WeeklyActivity holds calories burned per weekday, indexed by time.Weekday
// (0 = Sunday).
type WeeklyActivity [7]int

// Add adds calories to the bucket for day.
func (w *WeeklyActivity) Add(day time.Weekday, calories int) {
	w[day] += calories
	if w[day] < 0 {
		w[day] = 0
	}
}

// Subtract removes calories from the bucket for day, never going below zero.
func (w *WeeklyActivity) Subtract(day time.Weekday, calories int) {
	w[day] -= calories
	if w[day] < 0 {
		w[day] = 0
	}
}

// Total returns the calories across all seven days.
func (w WeeklyActivity) Total() int {
	total := 0
	for _, c := range w {
		total += c
	}
	return total
}

// State is the full set of tracker data: activities, goals, user stats
// and weekly totals.
type State struct {
	Activities []Activity     `json:"activities" yaml:"activities"`
	Goals      []Goal         `json:"goals" yaml:"goals"`
	Stats      UserStats      `json:"user_stats" yaml:"user_stats"`
	Weekly     WeeklyActivity `json:"weekly_activity" yaml:"weekly_activity"`
}

// EmptyState returns the first-run state: no activities or goals and
// default body measurements.
func EmptyState() *State {
	return &State{
		Activities: []Activity{},
		Goals:      []Goal{},
		Stats:      DefaultUserStats(),
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := &State{
		Activities: make([]Activity, len(s.Activities)),
		Goals:      make([]Goal, len(s.Goals)),
		Stats:      s.Stats,
		Weekly:     s.Weekly,
	}
	for i, a := range s.Activities {
		out.Activities[i] = a.Clone()
	}
	for i, g := range s.Goals {
		out.Goals[i] = g.Clone()
	}
	return out
}

// Clone returns a copy of a that shares no pointers with it.
func (a Activity) Clone() Activity {
	if a.DistanceKm != nil {
		d := *a.DistanceKm
		a.DistanceKm = &d
	}
	if a.Notes != nil {
		n := *a.Notes
		a.Notes = &n
	}
	return a
}

// Clone returns a copy of g that shares no pointers with it.
func (g Goal) Clone() Goal {
	if g.Deadline != nil {
		d := *g.Deadline
		g.Deadline = &d
	}
	return g
}
