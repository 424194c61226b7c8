// ABOUTME: Tracker is the in-memory fitness state store.
// ABOUTME: Keeps goal progress and weekly totals consistent with activities.
package tracker

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when a prefix matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// Tracker owns the activities, goals, user stats and weekly totals.
// All methods are safe for concurrent use; each runs to completion before
// another can observe or change the state.
type Tracker struct {
	mu        sync.RWMutex
	state     *models.State
	now       func() time.Time
	newID     func() string
	logger    *log.Logger
	observers []func(models.State)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used for "today" and the local time zone.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker that takes ownership of a copy of state.
// A nil state starts the tracker empty.
func New(state *models.State, opts ...Option) *Tracker {
	if state == nil {
		state = models.EmptyState()
	}
	t := &Tracker{
		state:  state.Clone(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Subscribe registers fn to be called with a snapshot after every change.
// Observers run synchronously, outside the tracker lock.
func (t *Tracker) Subscribe(fn func(models.State)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() models.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *t.state.Clone()
}

// Replace swaps the whole state, e.g. after an import.
func (t *Tracker) Replace(state *models.State) {
	t.mutate(func() bool {
		t.state = state.Clone()
		return true
	})
}

// mutate runs fn under the write lock and notifies observers when fn
// reports a change.
func (t *Tracker) mutate(fn func() bool) {
	t.mu.Lock()
	changed := fn()
	var snap models.State
	var observers []func(models.State)
	if changed {
		snap = *t.state.Clone()
		observers = append(observers, t.observers...)
	}
	t.mu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// today returns the start of the current local calendar day.
func (t *Tracker) today() time.Time {
	n := t.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// localDay converts ts into the tracker's time zone.
func (t *Tracker) localDay(ts time.Time) time.Time {
	l := ts.In(t.now().Location())
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, l.Location())
}

// weekday returns ts's day of week in the tracker's time zone.
func (t *Tracker) weekday(ts time.Time) time.Weekday {
	return ts.In(t.now().Location()).Weekday()
}

// resolveID finds the single id in ids that equals or starts with prefix.
func resolveID(ids []string, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return "", ErrAmbiguousID
	}
}
