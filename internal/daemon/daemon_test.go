package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lockin/internal/api"
	"lockin/internal/config"
	"lockin/internal/logging"
	"lockin/internal/testsupport"
	"lockin/internal/timer"
)

func newTestDaemon(t *testing.T, opts ...testsupport.ConfigOption) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)
	d, err := New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}

func (d *Daemon) testHandler() http.Handler {
	return d.server.server.Handler
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestDaemonStartStop(t *testing.T) {
	d := newTestDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if d.Addr() == "" {
		t.Fatal("expected bound address after start")
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	status = d.Status(ctx)
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestTimerLifecycleOverHTTP(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	rec := doRequest(t, handler, http.MethodPost, "/api/timer/start", api.TimerStartRequest{Preset: "pomodoro"})
	if rec.Code != http.StatusOK {
		t.Fatalf("start returned %d: %s", rec.Code, rec.Body.String())
	}
	var started api.TimerResponse
	decodeBody(t, rec, &started)
	if started.Timer.State != "running" || started.Timer.TotalSeconds != 25*60 {
		t.Fatalf("unexpected timer state %+v", started.Timer)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/timer/pause", nil)
	var paused api.TimerResponse
	decodeBody(t, rec, &paused)
	if paused.Timer.State != "paused" {
		t.Fatalf("expected paused, got %q", paused.Timer.State)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/timer/resume", nil)
	var resumed api.TimerResponse
	decodeBody(t, rec, &resumed)
	if resumed.Timer.State != "running" {
		t.Fatalf("expected running, got %q", resumed.Timer.State)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/timer/reset", nil)
	var reset api.TimerResponse
	decodeBody(t, rec, &reset)
	if reset.Timer.State != "idle" {
		t.Fatalf("expected idle, got %q", reset.Timer.State)
	}
}

func TestTimerStartRejectsBadInput(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	rec := doRequest(t, handler, http.MethodPost, "/api/timer/start", api.TimerStartRequest{Seconds: -5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative duration, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/timer/start", api.TimerStartRequest{Preset: "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown preset, got %d", rec.Code)
	}
}

func TestCompletionRecordsSessionAndGoal(t *testing.T) {
	d := newTestDaemon(t, testsupport.WithDailyGoal(60))
	ctx := context.Background()

	d.StartTimer(120, "deep-work")
	var completed bool
	for i := 0; i < 120; i++ {
		_, completed = d.AdvanceTick(ctx)
	}
	if !completed {
		t.Fatal("expected final tick to complete the session")
	}

	sessions, err := d.store.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].DurationMinutes != 2 || sessions[0].SessionType != "deep-work" {
		t.Fatalf("unexpected session %+v", sessions[0])
	}

	goal, err := d.store.GoalForDate(ctx, time.Now())
	if err != nil {
		t.Fatalf("GoalForDate: %v", err)
	}
	if goal == nil || goal.ActualMinutes != 2 || goal.DailyGoalMinutes != 60 {
		t.Fatalf("unexpected goal %+v", goal)
	}

	// Completion reports exactly once.
	if _, again := d.AdvanceTick(ctx); again {
		t.Fatal("completion must not re-trigger")
	}
	if snap := d.TimerSnapshot(); snap.State != timer.StateIdle {
		t.Fatalf("expected idle after completion, got %q", snap.State)
	}
}

func TestResetLogsPartialSession(t *testing.T) {
	d := newTestDaemon(t)
	ctx := context.Background()

	d.StartTimer(600, "custom")
	for i := 0; i < 180; i++ {
		d.AdvanceTick(ctx)
	}
	snap := d.ResetTimer(ctx)
	if snap.State != timer.StateIdle {
		t.Fatalf("expected idle after reset, got %q", snap.State)
	}

	sessions, err := d.store.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].DurationMinutes != 3 {
		t.Fatalf("expected one 3-minute session, got %+v", sessions)
	}
}

func TestResetBelowMinimumLogsNothing(t *testing.T) {
	d := newTestDaemon(t)
	ctx := context.Background()

	d.StartTimer(600, "custom")
	for i := 0; i < 30; i++ {
		d.AdvanceTick(ctx)
	}
	d.ResetTimer(ctx)

	sessions, err := d.store.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %+v", sessions)
	}
}

func TestAlarmEndpoints(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	rec := doRequest(t, handler, http.MethodPost, "/api/alarms", api.AlarmCreateRequest{Time: "7:05", Label: "A"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add returned %d: %s", rec.Code, rec.Body.String())
	}
	var first api.AlarmResponse
	decodeBody(t, rec, &first)
	if first.Alarm.Time != "07:05" {
		t.Fatalf("expected normalized time 07:05, got %q", first.Alarm.Time)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/alarms", api.AlarmCreateRequest{Time: "08:10", Label: "B"})
	var second api.AlarmResponse
	decodeBody(t, rec, &second)

	rec = doRequest(t, handler, http.MethodDelete, "/api/alarms/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove returned %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/alarms", nil)
	var list api.AlarmListResponse
	decodeBody(t, rec, &list)
	if len(list.Alarms) != 1 || list.Alarms[0].Label != "B" || list.Alarms[0].ID != second.Alarm.ID {
		t.Fatalf("unexpected alarms %+v", list.Alarms)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/alarms/2/toggle", nil)
	var toggled api.AlarmResponse
	decodeBody(t, rec, &toggled)
	if toggled.Alarm.Active {
		t.Fatal("expected alarm to be toggled off")
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/alarms", api.AlarmCreateRequest{Time: "25:00"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid time, got %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()
	ctx := context.Background()

	d.StartTimer(30 * 60, "custom")
	for i := 0; i < 30*60; i++ {
		d.AdvanceTick(ctx)
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/stats?days=7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats returned %d", rec.Code)
	}
	var payload api.StatsResponse
	decodeBody(t, rec, &payload)
	if payload.Stats.Days != 7 || payload.Stats.TotalMinutes != 30 {
		t.Fatalf("unexpected stats %+v", payload.Stats)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/stats?days=zero", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad days, got %d", rec.Code)
	}
}

func TestDocumentUpload(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "plan.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("Hello world. Bye.")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp api.DocumentResponse
	decodeBody(t, rec, &resp)
	if resp.Document.FileType != "text/plain" {
		t.Fatalf("unexpected file type %q", resp.Document.FileType)
	}
	if resp.Document.WordCount != 3 {
		t.Fatalf("unexpected word count %d", resp.Document.WordCount)
	}
	if resp.Content != "Hello world. Bye." {
		t.Fatalf("unexpected content %q", resp.Content)
	}

	// The disabled provider fills in analysis in the background.
	deadline := time.Now().Add(2 * time.Second)
	for {
		doc, err := d.store.GetDocument(context.Background(), resp.Document.ID)
		if err != nil {
			t.Fatalf("GetDocument: %v", err)
		}
		if doc != nil && doc.AnalysisData != "" {
			if !strings.Contains(doc.AnalysisData, "summary") {
				t.Fatalf("unexpected analysis payload %q", doc.AnalysisData)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for background analysis")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSettingsRebuildProvider(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	if name := d.Provider().Name(); name != "disabled" {
		t.Fatalf("expected disabled provider initially, got %q", name)
	}

	settings := api.Settings{AIProvider: config.ProviderOllama, OllamaModel: "llama3", DailyGoalMinutes: 240}
	encoded, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("encode settings: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("settings put returned %d: %s", rec.Code, rec.Body.String())
	}

	if name := d.Provider().Name(); name != "ollama" {
		t.Fatalf("expected ollama provider after settings, got %q", name)
	}
	if got := d.goalMinutes(context.Background()); got != 240 {
		t.Fatalf("expected goal 240 from settings, got %d", got)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/settings", nil)
	var stored api.SettingsResponse
	decodeBody(t, rec, &stored)
	if stored.Settings.AIProvider != config.ProviderOllama || stored.Settings.DailyGoalMinutes != 240 {
		t.Fatalf("unexpected stored settings %+v", stored.Settings)
	}
}

func TestDashboardRenders(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	rec := doRequest(t, handler, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard returned %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Lock In") || !strings.Contains(page, "00:00:00") {
		t.Fatalf("unexpected dashboard output: %s", page)
	}

	rec = doRequest(t, handler, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	d := newTestDaemon(t)
	handler := d.testHandler()

	rec := doRequest(t, handler, http.MethodGet, "/api/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status returned %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("expected request id header")
	}
	var payload api.StatusResponse
	decodeBody(t, rec, &payload)
	if payload.Status.Provider != "disabled" {
		t.Fatalf("unexpected provider %q", payload.Status.Provider)
	}
	if payload.Status.DatabasePath == "" || payload.Status.LockFilePath == "" {
		t.Fatalf("expected paths in status %+v", payload.Status)
	}
}
