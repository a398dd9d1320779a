package timer_test

import (
	"testing"

	"lockin/internal/timer"
)

func TestStartArmsCountdown(t *testing.T) {
	tm := timer.New()
	tm.Start(90, "custom")

	snap := tm.Snapshot()
	if snap.State != timer.StateRunning {
		t.Fatalf("state: got %q want running", snap.State)
	}
	if snap.RemainingSeconds != 90 || snap.TotalSeconds != 90 {
		t.Fatalf("remaining/total: got %d/%d want 90/90", snap.RemainingSeconds, snap.TotalSeconds)
	}
}

func TestStartZeroIsNoOp(t *testing.T) {
	tm := timer.New()
	tm.Start(0, "custom")

	snap := tm.Snapshot()
	if snap.State != timer.StateIdle || snap.TotalSeconds != 0 {
		t.Fatalf("expected idle after zero-duration start, got %+v", snap)
	}
}

func TestResetFromAnyState(t *testing.T) {
	cases := []struct {
		name    string
		arrange func(*timer.Timer)
	}{
		{"idle", func(*timer.Timer) {}},
		{"running", func(tm *timer.Timer) { tm.Start(60, "") }},
		{"paused", func(tm *timer.Timer) { tm.Start(60, ""); tm.Pause() }},
		{"completed", func(tm *timer.Timer) { tm.Start(1, ""); tm.Tick() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm := timer.New()
			tc.arrange(tm)
			tm.Reset()
			snap := tm.Snapshot()
			if snap.State != timer.StateIdle || snap.RemainingSeconds != 0 || snap.TotalSeconds != 0 {
				t.Fatalf("expected zeroed idle timer, got %+v", snap)
			}
		})
	}
}

func TestTickDecrementsAndCompletesOnce(t *testing.T) {
	tm := timer.New()
	tm.Start(3, "pomodoro")

	if completed := tm.Tick(); completed {
		t.Fatal("tick at remaining=3 should not complete")
	}
	if snap := tm.Snapshot(); snap.RemainingSeconds != 2 {
		t.Fatalf("remaining after one tick: got %d want 2", snap.RemainingSeconds)
	}

	tm.Tick()
	if completed := tm.Tick(); !completed {
		t.Fatal("tick reaching zero should report completion")
	}
	// The completion signal must not re-trigger.
	if completed := tm.Tick(); completed {
		t.Fatal("completion reported twice")
	}
	if snap := tm.Snapshot(); snap.State != timer.StateIdle {
		t.Fatalf("expected collapse to idle, got %q", snap.State)
	}
}

func TestCompletedSnapshotCollapsesToIdle(t *testing.T) {
	tm := timer.New()
	tm.Start(1, "")
	if completed := tm.Tick(); !completed {
		t.Fatal("expected completion")
	}

	first := tm.Snapshot()
	if first.State != timer.StateCompleted {
		t.Fatalf("first snapshot: got %q want completed", first.State)
	}
	second := tm.Snapshot()
	if second.State != timer.StateIdle {
		t.Fatalf("second snapshot: got %q want idle", second.State)
	}
}

func TestPauseResume(t *testing.T) {
	tm := timer.New()
	tm.Start(10, "")
	tm.Pause()

	if snap := tm.Snapshot(); snap.State != timer.StatePaused || snap.RemainingSeconds != 10 {
		t.Fatalf("pause should keep remaining, got %+v", snap)
	}
	if completed := tm.Tick(); completed {
		t.Fatal("paused timer must not tick")
	}
	if snap := tm.Snapshot(); snap.RemainingSeconds != 10 {
		t.Fatalf("paused timer decremented: %+v", snap)
	}

	tm.Resume()
	if snap := tm.Snapshot(); snap.State != timer.StateRunning {
		t.Fatalf("resume should run, got %q", snap.State)
	}

	// Resume from idle is a no-op.
	idle := timer.New()
	idle.Resume()
	if snap := idle.Snapshot(); snap.State != timer.StateIdle {
		t.Fatalf("resume from idle changed state: %q", snap.State)
	}
}

func TestApplyPreset(t *testing.T) {
	tm := timer.New()
	if ok := tm.ApplyPreset("pomodoro"); !ok {
		t.Fatal("pomodoro preset missing")
	}
	snap := tm.Snapshot()
	if snap.TotalSeconds != 25*60 || snap.SessionType != "pomodoro" {
		t.Fatalf("unexpected preset timer: %+v", snap)
	}

	if ok := tm.ApplyPreset("nap"); ok {
		t.Fatal("unknown preset accepted")
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{90, "00:01:30"},
		{3600, "01:00:00"},
		{7265, "02:01:05"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		if got := timer.FormatClock(tc.seconds); got != tc.want {
			t.Errorf("FormatClock(%d): got %q want %q", tc.seconds, got, tc.want)
		}
	}
}
