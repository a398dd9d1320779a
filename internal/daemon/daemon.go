package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"lockin/internal/alarm"
	"lockin/internal/analysis"
	"lockin/internal/config"
	"lockin/internal/logging"
	"lockin/internal/store"
	"lockin/internal/timer"
)

// Daemon coordinates the study dashboard state and enforces single-instance
// execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store

	// mu guards the in-memory session state: the countdown and alarms.
	mu     sync.Mutex
	timer  *timer.Timer
	alarms *alarm.List

	providerMu sync.RWMutex
	provider   analysis.Provider

	// contents caches extracted document text for the process lifetime so
	// re-analysis does not require a second upload. The database stores
	// metadata and analysis results only.
	contentMu sync.RWMutex
	contents  map[int64]string

	lockPath string
	lock     *flock.Flock

	server *apiServer

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
	Provider     string
	Timer        timer.Snapshot
	AlarmCount   int
	TodayMinutes int
	GoalMinutes  int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "lockind.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		timer:    timer.New(),
		alarms:   alarm.NewList(),
		provider: analysis.FromConfig(cfg),
		contents: make(map[int64]string),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	server, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.server = server
	return d, nil
}

// Start acquires the instance lock and begins serving HTTP.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another lockin daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.server.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("lockin daemon started",
		slog.String("lock", d.lockPath),
		slog.String("database", d.store.Path()),
		slog.String("provider", d.Provider().Name()))
	return nil
}

// Stop halts the HTTP server and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", slog.String("error", err.Error()))
	}
	d.running.Store(false)
	d.logger.Info("lockin daemon stopped")
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr reports the address the HTTP server is bound to, once started.
func (d *Daemon) Addr() string {
	if d.server == nil {
		return ""
	}
	return d.server.addr()
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) Status {
	d.mu.Lock()
	snap := d.timer.Snapshot()
	alarmCount := d.alarms.Len()
	d.mu.Unlock()

	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		Provider:     d.Provider().Name(),
		Timer:        snap,
		AlarmCount:   alarmCount,
		GoalMinutes:  d.goalMinutes(ctx),
	}
	if stats, err := d.store.StatsSince(ctx, 1); err == nil {
		status.TodayMinutes = stats.TodayMinutes
	}
	return status
}

// Provider returns the active analysis provider.
func (d *Daemon) Provider() analysis.Provider {
	d.providerMu.RLock()
	defer d.providerMu.RUnlock()
	return d.provider
}

// ApplySettings persists the settings blob and rebuilds the analysis
// provider when the stored selection overrides the config.
func (d *Daemon) ApplySettings(ctx context.Context, settings store.Settings) error {
	if err := d.store.SaveSettings(ctx, settings); err != nil {
		return err
	}

	cfg := *d.cfg
	if provider := strings.TrimSpace(settings.AIProvider); provider != "" {
		cfg.AI.Provider = provider
	}
	if key := strings.TrimSpace(settings.DeepSeekAPIKey); key != "" {
		cfg.AI.DeepSeekAPIKey = key
	}
	if endpoint := strings.TrimSpace(settings.OllamaEndpoint); endpoint != "" {
		cfg.AI.OllamaEndpoint = endpoint
	}
	if model := strings.TrimSpace(settings.OllamaModel); model != "" {
		cfg.AI.OllamaModel = model
	}

	d.providerMu.Lock()
	d.provider = analysis.FromConfig(&cfg)
	name := d.provider.Name()
	d.providerMu.Unlock()

	d.logger.Info("settings applied", slog.String("provider", name))
	return nil
}

func (d *Daemon) cacheContent(id int64, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	d.contentMu.Lock()
	d.contents[id] = content
	d.contentMu.Unlock()
}

func (d *Daemon) cachedContent(id int64) (string, bool) {
	d.contentMu.RLock()
	defer d.contentMu.RUnlock()
	content, ok := d.contents[id]
	return content, ok
}

// goalMinutes resolves the daily goal, preferring the stored settings over
// the config default.
func (d *Daemon) goalMinutes(ctx context.Context) int {
	if settings, err := d.store.LoadSettings(ctx); err == nil && settings.DailyGoalMinutes > 0 {
		return settings.DailyGoalMinutes
	}
	return d.cfg.Goals.DailyGoalMinutes
}

// tickInterval is the redraw cadence derived from config.
func (d *Daemon) tickInterval() time.Duration {
	seconds := d.cfg.Timer.TickSeconds
	if seconds <= 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}
