package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lockin/internal/config"
)

func TestLoadDefaultsExpandPathsAndEnvKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "lockin")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7643" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.AI.Provider != config.ProviderDisabled {
		t.Fatalf("expected analysis disabled by default, got %q", cfg.AI.Provider)
	}
	if cfg.AI.DeepSeekAPIKey != "test-key" {
		t.Fatalf("expected DeepSeek key from env, got %q", cfg.AI.DeepSeekAPIKey)
	}
	if cfg.Timer.TickSeconds != 1 {
		t.Fatalf("unexpected tick seconds: %d", cfg.Timer.TickSeconds)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "study_data.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`api_bind = "127.0.0.1:0"`,
		"[goals]",
		"daily_goal_minutes = 90",
		"[ai]",
		`provider = "ollama"`,
		`ollama_endpoint = "http://localhost:11434/"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Goals.DailyGoalMinutes != 90 {
		t.Fatalf("unexpected goal minutes: %d", cfg.Goals.DailyGoalMinutes)
	}
	if cfg.AI.Provider != config.ProviderOllama {
		t.Fatalf("unexpected provider: %q", cfg.AI.Provider)
	}
	if strings.HasSuffix(cfg.AI.OllamaEndpoint, "/") {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.AI.OllamaEndpoint)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown provider", func(c *config.Config) { c.AI.Provider = "gpt" }, "ai.provider"},
		{"deepseek without key", func(c *config.Config) { c.AI.Provider = config.ProviderDeepSeek }, "deepseek_api_key"},
		{"zero tick", func(c *config.Config) { c.Timer.TickSeconds = 0 }, "tick_seconds"},
		{"zero goal", func(c *config.Config) { c.Goals.DailyGoalMinutes = 0 }, "daily_goal_minutes"},
		{"bad bind", func(c *config.Config) { c.Paths.APIBind = "nonsense" }, "api_bind"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataDir = t.TempDir()
			cfg.Paths.LogDir = t.TempDir()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config did not load cleanly: exists=%v err=%v", exists, err)
	}
}
