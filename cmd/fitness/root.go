// ABOUTME: Root Cobra command for the fitness CLI.
// ABOUTME: Opens config, logger, storage and the tracker in PersistentPreRunE and saves in PostRunE.
package main

import (
	"fmt"
	"sync/atomic"

	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/logging"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/harperreed/fitness/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStore marks commands that manage storage themselves.
const skipStore = "skip-store"

var (
	debugFlag bool

	cfg    *config.Config
	logger *logging.Logger
	repo   storage.Repository
	trk    *tracker.Tracker
	dirty  atomic.Bool
)

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Personal activity, goal and BMI tracker",
	Long: `Fitness is a CLI tool for logging workouts, tracking goals and body stats.

WHAT IT TRACKS:

  Activities   running, walking, cycling, swimming, weightlifting, yoga, other
  Goals        calories (kcal), distance (km), workouts (sessions)
  Body stats   weight, height and BMI

QUICK START:

  $ fitness activity add running --duration 30 --distance 5
  $ fitness goal add calories 5000 --deadline 2025-07-01
  $ fitness stats --weight 72.5 --height 178
  $ fitness dashboard

Calories are estimated from your stored weight using MET values unless you
pass --calories. Every logged activity feeds the matching goals and the
weekly chart; deleting it rolls both back.

STORAGE:

  Data lives in ~/.local/share/fitness (override with data_dir in
  ~/.config/fitness/config.json or FITNESS_DATA_DIR). Backends: sqlite
  (default), badger, file and charm (E2E encrypted cloud sync).

MCP AND HTTP:

  fitness mcp     Model Context Protocol server on stdio
  fitness serve   JSON API on :8080 with Prometheus metrics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isMetaCommand(cmd) {
			return nil
		}
		if err := setupApp(); err != nil {
			return err
		}
		if cmd.Annotations[skipStore] == "true" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log debug output to stderr")
}

func isMetaCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "completion":
			return true
		}
	}
	return false
}

// setupApp loads .env, the config file and the logger.
func setupApp() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !config.IsValidBackend(c.GetBackend()) {
		return fmt.Errorf("unknown backend %q in config (use sqlite, badger, file or charm)", c.GetBackend())
	}
	cfg = c

	l, err := logging.New(logging.Options{
		Dir:   cfg.GetDataDir(),
		Level: cfg.GetLogLevel(),
		Debug: debugFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger = l
	return nil
}

// openStore opens the configured backend and loads the tracker from it.
// An empty store is seeded with demo data when demo_data is on.
func openStore() error {
	// A previous run in the same process may have failed before PostRunE.
	closeStore()

	r, err := cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	has, err := storage.HasState(r)
	if err != nil {
		_ = r.Close()
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var fallback *models.State
	seeded := false
	if !has && cfg.DemoData {
		fallback = tracker.DemoState(timeNow())
		seeded = true
	}

	state, err := storage.LoadState(r, fallback)
	if err != nil {
		_ = r.Close()
		return fmt.Errorf("failed to load state: %w", err)
	}

	repo = r
	trk = tracker.New(state, tracker.WithLogger(logger.Logger), tracker.WithClock(timeNow))
	dirty.Store(seeded)
	trk.Subscribe(func(models.State) { dirty.Store(true) })

	logger.Debug("store opened", "backend", cfg.GetBackend(), "activities", len(state.Activities), "goals", len(state.Goals))
	return nil
}

// closeApp saves a changed tracker and releases storage and the log file.
func closeApp() error {
	var saveErr error
	if repo != nil && trk != nil && dirty.Load() {
		snap := trk.Snapshot()
		if err := storage.SaveState(repo, &snap); err != nil {
			saveErr = fmt.Errorf("failed to save state: %w", err)
		}
	}
	closeStore()
	if logger != nil {
		_ = logger.Close()
	}
	return saveErr
}

func closeStore() {
	if repo != nil {
		if err := repo.Close(); err != nil && logger != nil {
			logger.Warn("close storage", "error", err)
		}
	}
	repo = nil
	trk = nil
	dirty.Store(false)
}
