// ABOUTME: Goal operations on the Tracker.
// ABOUTME: Covers create, merge update, manual completion and delete.
package tracker

import (
	"github.com/harperreed/fitness/internal/models"
)

// AddGoal creates a goal with zero progress. An empty unit falls back to
// the kind's default unit.
func (t *Tracker) AddGoal(in models.GoalInput) models.Goal {
	g := models.Goal{
		Kind:   in.Kind,
		Target: in.Target,
		Unit:   in.Unit,
	}
	if g.Unit == "" && models.IsValidGoalKind(string(g.Kind)) {
		g.Unit = g.Kind.Unit()
	}
	if in.Deadline != nil {
		d := *in.Deadline
		g.Deadline = &d
	}

	t.mutate(func() bool {
		g.ID = t.newID()
		t.state.Goals = append(t.state.Goals, g)
		t.logger.Debug("goal added", "id", g.ID, "type", g.Kind, "target", g.Target)
		return true
	})

	return g.Clone()
}

// UpdateGoal merges upd into the goal with the given id.
func (t *Tracker) UpdateGoal(id string, upd models.GoalUpdate) (models.Goal, bool) {
	var out models.Goal
	var found bool

	t.mutate(func() bool {
		idx := t.goalIndex(id)
		if idx < 0 {
			return false
		}
		found = true
		upd.Apply(&t.state.Goals[idx])
		out = t.state.Goals[idx].Clone()
		return true
	})

	return out, found
}

// CompleteGoal marks the goal completed regardless of its progress.
func (t *Tracker) CompleteGoal(id string) (models.Goal, bool) {
	var out models.Goal
	var found bool

	t.mutate(func() bool {
		idx := t.goalIndex(id)
		if idx < 0 {
			return false
		}
		found = true
		t.state.Goals[idx].Completed = true
		out = t.state.Goals[idx].Clone()
		t.logger.Debug("goal marked complete", "id", id)
		return true
	})

	return out, found
}

// DeleteGoal removes the goal with the given id.
func (t *Tracker) DeleteGoal(id string) bool {
	var found bool

	t.mutate(func() bool {
		idx := t.goalIndex(id)
		if idx < 0 {
			return false
		}
		found = true
		t.state.Goals = append(t.state.Goals[:idx], t.state.Goals[idx+1:]...)
		return true
	})

	return found
}

// Goals returns all goals in creation order.
func (t *Tracker) Goals() []models.Goal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Goal, len(t.state.Goals))
	for i, g := range t.state.Goals {
		out[i] = g.Clone()
	}
	return out
}

// Goal returns the goal with the exact id.
func (t *Tracker) Goal(id string) (models.Goal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := t.goalIndex(id)
	if idx < 0 {
		return models.Goal{}, false
	}
	return t.state.Goals[idx].Clone(), true
}

// ResolveGoalID expands a unique id prefix to the full goal id.
func (t *Tracker) ResolveGoalID(prefix string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, len(t.state.Goals))
	for i, g := range t.state.Goals {
		ids[i] = g.ID
	}
	return resolveID(ids, prefix)
}

func (t *Tracker) goalIndex(id string) int {
	for i, g := range t.state.Goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
