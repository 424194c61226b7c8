// ABOUTME: Tests for loading, saving and resetting the four state records.
// ABOUTME: Covers fallbacks for missing records and decode failures.
package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/harperreed/fitness/internal/models"
)

func sampleState() *models.State {
	dist := 5.0
	notes := "Morning run"
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	s := models.EmptyState()
	s.Activities = []models.Activity{{
		ID:              "a1",
		Kind:            models.ActivityRunning,
		DurationMinutes: 30,
		DistanceKm:      &dist,
		Calories:        300,
		Date:            time.Date(2025, 6, 11, 7, 30, 0, 0, time.UTC),
		Notes:           &notes,
	}}
	s.Goals = []models.Goal{{
		ID:       "g1",
		Kind:     models.GoalDistance,
		Target:   100,
		Current:  5,
		Unit:     "km",
		Deadline: &deadline,
	}}
	s.Stats = models.UserStats{WeightKg: 50, HeightCm: 160, BMI: 19.5}
	s.Weekly[time.Wednesday] = 300
	return s
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleState()
			if err := SaveState(repo, want); err != nil {
				t.Fatalf("SaveState failed: %v", err)
			}

			got, err := LoadState(repo, nil)
			if err != nil {
				t.Fatalf("LoadState failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
			}
		})
	}
}

func TestLoadStateEmptyRepoUsesFallback(t *testing.T) {
	repo := NewMemoryRepository()

	got, err := LoadState(repo, nil)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !reflect.DeepEqual(got, models.EmptyState()) {
		t.Errorf("expected empty first-run state, got %+v", got)
	}

	fallback := sampleState()
	got, err = LoadState(repo, fallback)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !reflect.DeepEqual(got, fallback) {
		t.Errorf("expected fallback state, got %+v", got)
	}
	got.Goals[0].Current = 99
	if fallback.Goals[0].Current != 5 {
		t.Error("LoadState result aliases the fallback")
	}
}

func TestLoadStateMixesRecordsAndFallback(t *testing.T) {
	repo := NewMemoryRepository()
	_ = repo.Put(KeyUserStats, []byte(`{"weight":80,"height":180,"bmi":24.7}`))
	_ = repo.Put(KeyGoals, []byte(`[]`))

	got, err := LoadState(repo, sampleState())
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got.Stats.WeightKg != 80 || got.Stats.BMI != 24.7 {
		t.Errorf("stats not loaded from record: %+v", got.Stats)
	}
	if len(got.Goals) != 0 {
		t.Errorf("goals record should win over fallback, got %d goals", len(got.Goals))
	}
	if len(got.Activities) != 1 {
		t.Errorf("missing activities record should fall back, got %d", len(got.Activities))
	}
	if got.Weekly[time.Wednesday] != 300 {
		t.Errorf("missing weekly record should fall back, got %v", got.Weekly)
	}
}

func TestLoadStateNullArrays(t *testing.T) {
	repo := NewMemoryRepository()
	_ = repo.Put(KeyActivities, []byte(`null`))

	got, err := LoadState(repo, nil)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got.Activities == nil {
		t.Error("Activities should be an empty slice, not nil")
	}
}

func TestLoadStateRejectsMalformedRecord(t *testing.T) {
	repo := NewMemoryRepository()
	_ = repo.Put(KeyWeeklyActivity, []byte(`{"monday":1}`))

	if _, err := LoadState(repo, nil); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSaveStateWritesEmptyArrays(t *testing.T) {
	repo := NewMemoryRepository()
	if err := SaveState(repo, &models.State{}); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	for _, key := range []string{KeyActivities, KeyGoals} {
		data, err := repo.Get(key)
		if err != nil {
			t.Fatalf("Get %s failed: %v", key, err)
		}
		if string(data) != "[]" {
			t.Errorf("%s = %s, want []", key, data)
		}
	}
	data, _ := repo.Get(KeyWeeklyActivity)
	if string(data) != "[0,0,0,0,0,0,0]" {
		t.Errorf("weekly = %s", data)
	}
}

func TestResetDeletesAllRecords(t *testing.T) {
	repo := NewMemoryRepository()
	if err := SaveState(repo, sampleState()); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	has, err := HasState(repo)
	if err != nil || !has {
		t.Fatalf("HasState = %v, %v; want true", has, err)
	}

	if err := Reset(repo); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	for _, key := range AllKeys {
		if _, err := repo.Get(key); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s still present after reset", key)
		}
	}
	has, _ = HasState(repo)
	if has {
		t.Error("HasState should be false after reset")
	}
}

type failingRepo struct {
	*MemoryRepository
	failKey string
}

func (f failingRepo) Put(key string, data []byte) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryRepository.Put(key, data)
}

func TestSaveStateReportsFailingRecord(t *testing.T) {
	repo := failingRepo{MemoryRepository: NewMemoryRepository(), failKey: KeyUserStats}

	err := SaveState(repo, sampleState())
	if err == nil {
		t.Fatal("expected error")
	}
	// records written before the failure stay written
	if _, err := repo.Get(KeyGoals); err != nil {
		t.Errorf("goals should have been saved: %v", err)
	}
}
