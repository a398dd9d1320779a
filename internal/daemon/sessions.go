package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lockin/internal/alarm"
	"lockin/internal/logging"
	"lockin/internal/store"
	"lockin/internal/timer"
)

// SessionTypeCustom is recorded when a countdown was started with an
// explicit duration rather than a named preset.
const SessionTypeCustom = "custom"

// StartTimer arms the countdown with an explicit duration in seconds.
func (d *Daemon) StartTimer(seconds int, sessionType string) timer.Snapshot {
	if sessionType == "" {
		sessionType = SessionTypeCustom
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Start(seconds, sessionType)
	return d.timer.Snapshot()
}

// StartPreset arms the countdown from a named preset.
func (d *Daemon) StartPreset(name string) (timer.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.timer.ApplyPreset(name) {
		return d.timer.Snapshot(), fmt.Errorf("unknown preset %q", name)
	}
	return d.timer.Snapshot(), nil
}

// PauseTimer suspends a running countdown.
func (d *Daemon) PauseTimer() timer.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Pause()
	return d.timer.Snapshot()
}

// ResumeTimer continues a paused countdown.
func (d *Daemon) ResumeTimer() timer.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Resume()
	return d.timer.Snapshot()
}

// ResetTimer abandons the countdown. Partial progress of at least the
// configured minimum is still recorded as a study session before the state
// is cleared.
func (d *Daemon) ResetTimer(ctx context.Context) timer.Snapshot {
	d.mu.Lock()
	prior := d.timer.Snapshot()
	elapsed := d.timer.ElapsedSeconds()
	d.timer.Reset()
	snap := d.timer.Snapshot()
	d.mu.Unlock()

	if minutes := elapsed / 60; minutes >= d.cfg.Timer.MinLoggedMinutes && minutes > 0 {
		startedAt := prior.StartedAt
		if startedAt.IsZero() {
			startedAt = time.Now().Add(-time.Duration(elapsed) * time.Second)
		}
		d.recordSession(ctx, startedAt, minutes, prior.SessionType)
	}
	return snap
}

// TimerSnapshot returns the current countdown view.
func (d *Daemon) TimerSnapshot() timer.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.Snapshot()
}

// AdvanceTick moves the countdown forward one second. When the tick
// completes the session, the full duration is logged and the day's goal
// progress updated; completed reports true exactly once per session.
func (d *Daemon) AdvanceTick(ctx context.Context) (timer.Snapshot, bool) {
	d.mu.Lock()
	completed := d.timer.Tick()
	var (
		elapsed     int
		sessionType string
		startedAt   time.Time
	)
	if completed {
		elapsed = d.timer.ElapsedSeconds()
		snap := d.timer.Snapshot() // consumes the Completed state
		sessionType = snap.SessionType
		startedAt = snap.StartedAt
		d.mu.Unlock()
		if startedAt.IsZero() {
			startedAt = time.Now().Add(-time.Duration(elapsed) * time.Second)
		}
		d.recordSession(ctx, startedAt, elapsed/60, sessionType)
		return snap, true
	}
	snap := d.timer.Snapshot()
	d.mu.Unlock()
	return snap, false
}

func (d *Daemon) recordSession(ctx context.Context, startedAt time.Time, minutes int, sessionType string) {
	if minutes < d.cfg.Timer.MinLoggedMinutes || minutes <= 0 {
		return
	}
	if sessionType == "" {
		sessionType = SessionTypeCustom
	}
	now := time.Now()

	id, err := d.store.AddSession(ctx, store.Session{
		StartTime:       startedAt,
		EndTime:         now,
		DurationMinutes: minutes,
		SessionType:     sessionType,
	})
	if err != nil {
		d.logger.Error("failed to record study session",
			slog.String("error", err.Error()),
			slog.Int("minutes", minutes))
		return
	}

	goal := d.goalMinutes(ctx)
	if err := d.store.AddGoalProgress(ctx, now, goal, minutes); err != nil {
		d.logger.Error("failed to update daily goal",
			slog.String("error", err.Error()),
			slog.Int64(logging.FieldSessionID, id))
	}

	d.logger.Info("study session recorded",
		slog.Int64(logging.FieldSessionID, id),
		slog.Int("minutes", minutes),
		slog.String("session_type", sessionType))
}

// AddAlarm registers an alarm at a 24-hour HH:MM time of day.
func (d *Daemon) AddAlarm(timeOfDay, label string) (alarm.Alarm, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alarms.Add(timeOfDay, label)
}

// RemoveAlarm deletes the alarm with the given id.
func (d *Daemon) RemoveAlarm(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alarms.Remove(id)
}

// ToggleAlarm flips an alarm's active flag and returns the updated record.
func (d *Daemon) ToggleAlarm(id int64) (alarm.Alarm, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.alarms.Toggle(id) {
		return alarm.Alarm{}, false
	}
	for _, a := range d.alarms.All() {
		if a.ID == id {
			return a, true
		}
	}
	return alarm.Alarm{}, false
}

// AlarmList returns all alarms in insertion order.
func (d *Daemon) AlarmList() []alarm.Alarm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alarms.All()
}

// DueAlarms returns active alarms matching the current minute.
func (d *Daemon) DueAlarms(now time.Time) []alarm.Alarm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alarms.Due(now.Format("15:04"))
}
