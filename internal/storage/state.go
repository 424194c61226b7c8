// ABOUTME: Loads and saves the tracker state as four keyed records.
// ABOUTME: Missing records fall back to the matching part of a fallback state.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// LoadState reads the four records from repo. Each missing record is taken
// from fallback; a nil fallback means the empty first-run state.
func LoadState(repo Repository, fallback *models.State) (*models.State, error) {
	if fallback == nil {
		fallback = models.EmptyState()
	}
	state := fallback.Clone()

	if _, err := loadRecord(repo, KeyActivities, &state.Activities); err != nil {
		return nil, err
	}
	if _, err := loadRecord(repo, KeyGoals, &state.Goals); err != nil {
		return nil, err
	}
	if _, err := loadRecord(repo, KeyUserStats, &state.Stats); err != nil {
		return nil, err
	}
	if _, err := loadRecord(repo, KeyWeeklyActivity, &state.Weekly); err != nil {
		return nil, err
	}

	if state.Activities == nil {
		state.Activities = []models.Activity{}
	}
	if state.Goals == nil {
		state.Goals = []models.Goal{}
	}
	return state, nil
}

// HasState reports whether any of the four records exists.
func HasState(repo Repository) (bool, error) {
	for _, key := range AllKeys {
		_, err := repo.Get(key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}

// loadRecord decodes the record into v. It reports false without touching v
// when the record does not exist.
func loadRecord(repo Repository, key string, v any) (bool, error) {
	data, err := repo.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveState writes all four records. Writes are independent; a failure
// part way leaves the earlier records updated.
func SaveState(repo Repository, state *models.State) error {
	activities := state.Activities
	if activities == nil {
		activities = []models.Activity{}
	}
	goals := state.Goals
	if goals == nil {
		goals = []models.Goal{}
	}

	records := []struct {
		key   string
		value any
	}{
		{KeyActivities, activities},
		{KeyGoals, goals},
		{KeyUserStats, state.Stats},
		{KeyWeeklyActivity, state.Weekly},
	}
	for _, r := range records {
		data, err := json.Marshal(r.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.key, err)
		}
		if err := repo.Put(r.key, data); err != nil {
			return fmt.Errorf("save %s: %w", r.key, err)
		}
	}
	return nil
}

// Reset deletes all four records. In-memory trackers are not touched.
func Reset(repo Repository) error {
	for _, key := range AllKeys {
		if err := repo.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}
