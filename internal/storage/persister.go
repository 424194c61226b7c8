// ABOUTME: Persister saves tracker snapshots to a repository after each change.
// ABOUTME: Save failures are logged and kept for the caller to inspect.
package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/models"
)

// Persister writes every state it observes to a Repository. Register
// Save with tracker.Subscribe.
type Persister struct {
	mu     sync.Mutex
	repo   Repository
	logger *log.Logger
	err    error
	saves  int
}

// NewPersister creates a persister for repo. A nil logger discards output.
func NewPersister(repo Repository, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Persister{repo: repo, logger: logger}
}

// Save writes all four records. Calls are serialised.
func (p *Persister) Save(state models.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := SaveState(p.repo, &state); err != nil {
		p.err = err
		p.logger.Error("save state failed", "err", err)
		return
	}
	p.saves++
	p.logger.Debug("state saved", "activities", len(state.Activities), "goals", len(state.Goals))
}

// Err returns the most recent save error, if any.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Saves returns how many saves succeeded.
func (p *Persister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
