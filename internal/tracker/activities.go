// ABOUTME: Activity operations on the Tracker.
// ABOUTME: Adding or deleting an activity updates goals and weekly totals.
package tracker

import (
	"math"
	"sort"

	"github.com/harperreed/fitness/internal/models"
)

// AddActivity logs a new activity. Every open goal gains the activity's
// contribution and is marked completed once it reaches its target. The
// activity's calories are added to its weekday bucket.
func (t *Tracker) AddActivity(in models.ActivityInput) models.Activity {
	a := models.Activity{
		Kind:            in.Kind,
		DurationMinutes: in.DurationMinutes,
		Calories:        in.Calories,
		Date:            in.Date,
	}
	if in.DistanceKm != nil {
		d := *in.DistanceKm
		a.DistanceKm = &d
	}
	if in.Notes != nil {
		n := *in.Notes
		a.Notes = &n
	}

	t.mutate(func() bool {
		a.ID = t.newID()
		t.state.Activities = append([]models.Activity{a}, t.state.Activities...)

		for i := range t.state.Goals {
			g := &t.state.Goals[i]
			if g.Completed {
				continue
			}
			amount, ok := g.Contribution(a)
			if !ok {
				continue
			}
			g.Current += amount
			if g.Current >= g.Target {
				g.Completed = true
				t.logger.Debug("goal completed", "goal", g.ID, "type", g.Kind, "current", g.Current, "target", g.Target)
			}
		}

		t.state.Weekly.Add(t.weekday(a.Date), a.Calories)
		t.logger.Debug("activity added", "id", a.ID, "type", a.Kind, "calories", a.Calories)
		return true
	})

	return a.Clone()
}

// DeleteActivity removes the activity with the given id and reverses its
// effects: open goals lose its contribution (never going below zero) and its
// weekday bucket loses its calories. Completed goals stay completed. A
// missing id leaves the state untouched and returns false.
func (t *Tracker) DeleteActivity(id string) (models.Activity, bool) {
	var removed models.Activity
	var found bool

	t.mutate(func() bool {
		idx := t.activityIndex(id)
		if idx < 0 {
			return false
		}
		found = true
		removed = t.state.Activities[idx]
		t.state.Activities = append(t.state.Activities[:idx], t.state.Activities[idx+1:]...)

		for i := range t.state.Goals {
			g := &t.state.Goals[i]
			if g.Completed {
				continue
			}
			amount, ok := g.Contribution(removed)
			if !ok {
				continue
			}
			g.Current = math.Max(0, g.Current-amount)
		}

		t.state.Weekly.Subtract(t.weekday(removed.Date), removed.Calories)
		t.logger.Debug("activity deleted", "id", removed.ID, "type", removed.Kind)
		return true
	})

	return removed, found
}

// Activities returns all activities in storage order (newest insert first).
func (t *Tracker) Activities() []models.Activity {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Activity, len(t.state.Activities))
	for i, a := range t.state.Activities {
		out[i] = a.Clone()
	}
	return out
}

// Activity returns the activity with the exact id.
func (t *Tracker) Activity(id string) (models.Activity, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := t.activityIndex(id)
	if idx < 0 {
		return models.Activity{}, false
	}
	return t.state.Activities[idx].Clone(), true
}

// ResolveActivityID expands a unique id prefix to the full activity id.
func (t *Tracker) ResolveActivityID(prefix string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, len(t.state.Activities))
	for i, a := range t.state.Activities {
		ids[i] = a.ID
	}
	return resolveID(ids, prefix)
}

// ListActivities returns activities sorted by date, most recent first,
// optionally filtered by kind. A limit <= 0 returns everything.
func (t *Tracker) ListActivities(kind *models.ActivityKind, limit int) []models.Activity {
	return filterActivities(t.Activities(), kind, limit)
}

// filterActivities sorts and filters all in place; callers pass a copy.
func filterActivities(all []models.Activity, kind *models.ActivityKind, limit int) []models.Activity {
	out := all[:0]
	for _, a := range all {
		if kind != nil && a.Kind != *kind {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentActivities returns the n most recent activities by date.
func (t *Tracker) RecentActivities(n int) []models.Activity {
	return t.ListActivities(nil, n)
}

func (t *Tracker) activityIndex(id string) int {
	for i, a := range t.state.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}
