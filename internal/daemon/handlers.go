package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lockin/internal/api"
	"lockin/internal/store"
	"lockin/internal/timer"
)

// defaultStatsDays is the lookback window when the stats query omits days.
const defaultStatsDays = 30

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		Provider:     status.Provider,
		Timer:        api.FromSnapshot(status.Timer),
		AlarmCount:   status.AlarmCount,
		TodayMinutes: status.TodayMinutes,
		GoalMinutes:  status.GoalMinutes,
	}
	s.writeJSON(w, http.StatusOK, api.StatusResponse{Status: payload})
}

func (s *apiServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	now := time.Now()
	state := api.State{
		Timer:     api.FromSnapshot(s.daemon.TimerSnapshot()),
		Alarms:    api.FromAlarms(s.daemon.AlarmList()),
		DueAlarms: api.FromAlarms(s.daemon.DueAlarms(now)),
	}
	if goal, err := s.daemon.store.GoalForDate(r.Context(), now); err == nil && goal != nil {
		state.Goal = api.FromGoal(*goal)
	} else {
		state.Goal = api.Goal{
			Date:             now.Format("2006-01-02"),
			DailyGoalMinutes: s.daemon.goalMinutes(r.Context()),
		}
	}
	s.writeJSON(w, http.StatusOK, api.StateResponse{State: state})
}

func (s *apiServer) handleTimer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeTimer(w, s.daemon.TimerSnapshot())
}

func (s *apiServer) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.TimerStartRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if preset := strings.TrimSpace(req.Preset); preset != "" {
		snap, err := s.daemon.StartPreset(preset)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeTimer(w, snap)
		return
	}
	if req.Seconds <= 0 {
		s.writeError(w, http.StatusBadRequest, "duration must be positive")
		return
	}
	s.writeTimer(w, s.daemon.StartTimer(req.Seconds, strings.TrimSpace(req.SessionType)))
}

func (s *apiServer) handleTimerPreset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.TimerStartRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := s.daemon.StartPreset(strings.TrimSpace(req.Preset))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeTimer(w, snap)
}

func (s *apiServer) handleTimerPause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeTimer(w, s.daemon.PauseTimer())
}

func (s *apiServer) handleTimerResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeTimer(w, s.daemon.ResumeTimer())
}

func (s *apiServer) handleTimerReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeTimer(w, s.daemon.ResetTimer(r.Context()))
}

func (s *apiServer) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.PresetListResponse{Presets: api.FromPresets(timer.Presets())})
}

func (s *apiServer) writeTimer(w http.ResponseWriter, snap timer.Snapshot) {
	s.writeJSON(w, http.StatusOK, api.TimerResponse{Timer: api.FromSnapshot(snap)})
}

func (s *apiServer) handleAlarms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, api.AlarmListResponse{Alarms: api.FromAlarms(s.daemon.AlarmList())})
	case http.MethodPost:
		var req api.AlarmCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := s.daemon.AddAlarm(req.Time, req.Label)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log(r.Context()).Info("alarm added",
			slog.Int64("alarm_id", created.ID),
			slog.String("time", created.Time))
		s.writeJSON(w, http.StatusCreated, api.AlarmResponse{Alarm: api.FromAlarm(created)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleAlarmItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/alarms/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid alarm id")
		return
	}

	switch {
	case r.Method == http.MethodDelete && action == "":
		if !s.daemon.RemoveAlarm(id) {
			s.writeError(w, http.StatusNotFound, "alarm not found")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
	case r.Method == http.MethodPost && action == "toggle":
		updated, ok := s.daemon.ToggleAlarm(id)
		if !ok {
			s.writeError(w, http.StatusNotFound, "alarm not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.AlarmResponse{Alarm: api.FromAlarm(updated)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	days := defaultStatsDays
	if value := strings.TrimSpace(r.URL.Query().Get("days")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}
	stats, err := s.daemon.store.StatsSince(r.Context(), days)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.StatsResponse{Stats: api.FromStats(stats, days)})
}

func (s *apiServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := 10
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	sessions, err := s.daemon.store.RecentSessions(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.SessionListResponse{Sessions: api.FromSessions(sessions)})
}

func (s *apiServer) handleGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	now := time.Now()
	goal, err := s.daemon.store.GoalForDate(r.Context(), now)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if goal == nil {
		goal = &store.Goal{
			Date:             now.Format("2006-01-02"),
			DailyGoalMinutes: s.daemon.goalMinutes(r.Context()),
		}
	}
	s.writeJSON(w, http.StatusOK, api.GoalResponse{Goal: api.FromGoal(*goal)})
}

func (s *apiServer) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.daemon.store.LoadSettings(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.SettingsResponse{Settings: api.FromSettings(settings)})
	case http.MethodPut:
		var settings api.Settings
		if err := decodeJSON(r, &settings); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.daemon.ApplySettings(r.Context(), api.ToSettings(settings)); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.SettingsResponse{Settings: settings})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message required")
		return
	}

	provider := s.daemon.Provider()
	reply, err := provider.Chat(r.Context(), req.Message)
	if err != nil {
		// Provider failures degrade to an error string, not a 5xx.
		reply = "AI request failed: " + err.Error()
		s.log(r.Context()).Warn("chat request failed",
			slog.String("provider", provider.Name()),
			slog.String("error", err.Error()))
	}
	s.writeJSON(w, http.StatusOK, api.ChatResponse{Provider: provider.Name(), Reply: reply})
}

func decodeJSON(r *http.Request, out any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body required")
		}
		return errors.New("invalid request body")
	}
	return nil
}
