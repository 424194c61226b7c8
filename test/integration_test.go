// ABOUTME: Integration tests for the fitness CLI.
// ABOUTME: Builds the binary and runs a full workflow against a temp data dir.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	projectRoot, _ := filepath.Abs("..")
	fitnessBinary := filepath.Join(t.TempDir(), "fitness")

	buildCmd := exec.Command("go", "build", "-o", fitnessBinary, "./cmd/fitness")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_DATA_HOME="+tmpDir,
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"FITNESS_BACKEND=sqlite",
		"NO_COLOR=1",
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(fitnessBinary, args...)
		cmd.Env = env
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("goal", "add", "calories", "1000")
	if err != nil {
		t.Fatalf("Failed to add goal: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added calories goal") {
		t.Errorf("Expected 'Added calories goal' in output, got: %s", output)
	}

	output, err = run("activity", "add", "running", "--duration", "30", "--distance", "5")
	if err != nil {
		t.Fatalf("Failed to add activity: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged Running") || !strings.Contains(output, "343 kcal") {
		t.Errorf("Expected 'Logged Running' with 343 kcal, got: %s", output)
	}

	output, err = run("activity", "list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "running") {
		t.Errorf("Expected 'running' in list output, got: %s", output)
	}

	output, err = run("goal", "list")
	if err != nil {
		t.Fatalf("Failed to list goals: %v\n%s", err, output)
	}
	if !strings.Contains(output, "343.0/1000.0 kcal") {
		t.Errorf("Expected goal progress in output, got: %s", output)
	}

	output, err = run("activity", "add", "dancing", "--duration", "30")
	if err == nil {
		t.Fatalf("Expected unknown type to fail, got: %s", output)
	}
	if !strings.Contains(output, "Error: unknown activity type: dancing") {
		t.Errorf("Expected error message on stderr, got: %s", output)
	}

	output, err = run("dashboard")
	if err != nil {
		t.Fatalf("Failed to show dashboard: %v\n%s", err, output)
	}
	if !strings.Contains(output, "343 kcal") {
		t.Errorf("Expected today's calories on dashboard, got: %s", output)
	}
}
