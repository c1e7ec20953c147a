// ABOUTME: Integration tests for the fittrack CLI.
// ABOUTME: Builds the binary and runs a full account and workout workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "fittrack")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/fittrack")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Isolated config and data
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"OPENAI_API_KEY=",
		"FITTRACK_AI_API_KEY=",
		"FITTRACK_AI_BASE_URL=",
	)

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--backend", "sqlite", "--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Commands need an account first
	output, err := run("workout", "list")
	if err == nil {
		t.Fatalf("Expected workout list to fail before signup, got: %s", output)
	}

	output, err = run("signup", "--name", "Alex", "--age", "28", "--weight", "75", "--height", "180", "--pin", "1234")
	if err != nil {
		t.Fatalf("Failed to sign up: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Welcome, Alex") {
		t.Errorf("Expected welcome message, got: %s", output)
	}

	// The session survives between processes
	output, err = run("workout", "add", "leg day", "--date", "2024-05-06", "--exercise", "squat:80x10,85x8")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Volume: 1480 kg") {
		t.Errorf("Expected volume in output, got: %s", output)
	}

	output, err = run("workout", "list", "--date", "2024-05-06")
	if err != nil {
		t.Fatalf("Failed to list workouts: %v\n%s", err, output)
	}
	if !strings.Contains(output, "leg day") {
		t.Errorf("Expected 'leg day' in workout list, got: %s", output)
	}

	output, err = run("progress", "exercise", "squat")
	if err != nil {
		t.Fatalf("Failed to show progress: %v\n%s", err, output)
	}
	if !strings.Contains(output, "05-06") {
		t.Errorf("Expected 05-06 in progress output, got: %s", output)
	}

	// Logging out locks the data again
	if output, err = run("logout"); err != nil {
		t.Fatalf("Failed to log out: %v\n%s", err, output)
	}
	if output, err = run("workout", "list"); err == nil {
		t.Errorf("Expected workout list to fail after logout, got: %s", output)
	}
	if output, err = run("login", "--pin", "1234"); err != nil {
		t.Fatalf("Failed to log in: %v\n%s", err, output)
	}

	output, err = run("export", "markdown")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "| 2024-05-06 | leg day |") {
		t.Errorf("Expected workout row in markdown export, got: %s", output)
	}
}
