package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// Timer contains configuration for the countdown timer.
type Timer struct {
	// TickSeconds is the redraw cadence in seconds. Each dashboard render
	// observed while the timer runs blocks for one tick before decrementing.
	TickSeconds int `toml:"tick_seconds"`
	// MinLoggedMinutes is the smallest partial session worth recording when
	// a running timer is reset before completing.
	MinLoggedMinutes int `toml:"min_logged_minutes"`
}

// Goals contains configuration for daily study goals.
type Goals struct {
	DailyGoalMinutes int `toml:"daily_goal_minutes"`
}

// AI contains configuration for the document analysis provider.
type AI struct {
	// Provider selects the analysis backend: "disabled", "deepseek", or "ollama".
	Provider        string `toml:"provider"`
	DeepSeekAPIKey  string `toml:"deepseek_api_key"`
	DeepSeekBaseURL string `toml:"deepseek_base_url"`
	DeepSeekModel   string `toml:"deepseek_model"`
	OllamaEndpoint  string `toml:"ollama_endpoint"`
	OllamaModel     string `toml:"ollama_model"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Lockin.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - Timer: countdown cadence and session logging thresholds
//   - Goals: daily study goal defaults
//   - AI: document analysis provider selection and credentials
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Timer   Timer   `toml:"timer"`
	Goals   Goals   `toml:"goals"`
	AI      AI      `toml:"ai"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/lockin/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lockin.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.AI.DeepSeekAPIKey) == "" {
		if envKey := strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")); envKey != "" {
			c.AI.DeepSeekAPIKey = envKey
		}
	}
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		c.AI.Provider = ProviderDisabled
	}
	c.AI.DeepSeekBaseURL = strings.TrimRight(strings.TrimSpace(c.AI.DeepSeekBaseURL), "/")
	c.AI.OllamaEndpoint = strings.TrimRight(strings.TrimSpace(c.AI.OllamaEndpoint), "/")

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "study_data.db")
}

// CreateSample writes the embedded sample configuration to the target path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves tilde shortcuts and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
