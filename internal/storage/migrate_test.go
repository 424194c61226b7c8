// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-badger, file-to-sqlite, and partial sources.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMigrateDataSQLiteToBadger(t *testing.T) {
	src := setupTestDB(t)
	want := sampleState()
	if err := SaveState(src, want); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	dst, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer dst.Close()

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if len(summary.Copied) != 4 || len(summary.Missing) != 0 {
		t.Errorf("summary = %+v", summary)
	}

	got, err := LoadState(dst, nil)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("migrated state mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestMigrateDataPartialSourceClearsDestination(t *testing.T) {
	srcDir := t.TempDir()
	src, err := NewFileStore(srcDir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	_ = src.Put(KeyUserStats, []byte(`{"weight":80,"height":180,"bmi":24.7}`))

	dst := setupTestDB(t)
	if err := SaveState(dst, sampleState()); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if len(summary.Copied) != 1 || summary.Copied[0] != KeyUserStats {
		t.Errorf("Copied = %v", summary.Copied)
	}
	if len(summary.Missing) != 3 {
		t.Errorf("Missing = %v", summary.Missing)
	}
	if _, err := dst.Get(KeyActivities); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale activities left in destination: %v", err)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("missing dir: got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("empty dir: got %v, %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "x"), []byte("1"), 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("non-empty dir: got %v, %v", nonEmpty, err)
	}
}
