package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lockin/internal/config"
	"lockin/internal/daemon"
	"lockin/internal/logging"
	"lockin/internal/testsupport"
)

type cliTestEnv struct {
	addr       string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	configPath := filepath.Join(homeDir, ".config", "lockin", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	d, err := daemon.New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		_ = d.Close()
	})

	return &cliTestEnv{addr: d.Addr(), configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\napi_bind = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.APIBind,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, addr, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--addr", addr}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "running")
	requireContains(t, out, "Provider:  disabled")
}

func TestTimerCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"timer", "preset", "pomodoro"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("timer preset: %v", err)
	}
	requireContains(t, out, "00:25:00")
	requireContains(t, out, "running")

	out, _, err = runCLI(t, []string{"timer", "pause"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("timer pause: %v", err)
	}
	requireContains(t, out, "paused")

	out, _, err = runCLI(t, []string{"timer", "reset"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("timer reset: %v", err)
	}
	requireContains(t, out, "idle")

	_, _, err = runCLI(t, []string{"timer", "preset", "nope"}, env.addr, env.configPath)
	if err == nil {
		t.Fatal("expected unknown preset to fail")
	}
}

func TestAlarmCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"alarm", "add", "07:30", "--label", "Morning"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("alarm add: %v", err)
	}
	requireContains(t, out, "07:30")

	out, _, err = runCLI(t, []string{"alarm", "list"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("alarm list: %v", err)
	}
	requireContains(t, out, "Morning")

	out, _, err = runCLI(t, []string{"alarm", "remove", "1"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("alarm remove: %v", err)
	}
	requireContains(t, out, "Removed alarm 1")
}

func TestDocCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	notes := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(notes, []byte("Study the water cycle."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, _, err := runCLI(t, []string{"doc", "add", notes}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("doc add: %v", err)
	}
	requireContains(t, out, "notes.txt")
	requireContains(t, out, "4 words")

	out, _, err = runCLI(t, []string{"doc", "list"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("doc list: %v", err)
	}
	requireContains(t, out, "notes.txt")
}

func TestStatsJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"stats", "--days", "7", "--json"}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, `"days": 7`)
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate", "--path", env.configPath}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "is valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.addr, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}
