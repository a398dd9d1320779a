package api

import (
	"encoding/json"
	"strings"

	"lockin/internal/alarm"
	"lockin/internal/store"
	"lockin/internal/timer"
)

// FromSnapshot converts a countdown snapshot to its API representation.
func FromSnapshot(snap timer.Snapshot) TimerState {
	dto := TimerState{
		State:            string(snap.State),
		RemainingSeconds: snap.RemainingSeconds,
		TotalSeconds:     snap.TotalSeconds,
		SessionType:      snap.SessionType,
		Display:          timer.FormatClock(snap.RemainingSeconds),
		Progress:         snap.Progress(),
		Completed:        snap.State == timer.StateCompleted,
	}
	if !snap.StartedAt.IsZero() {
		dto.StartedAt = snap.StartedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromPresets converts the quick presets into API DTOs.
func FromPresets(presets []timer.Preset) []Preset {
	if len(presets) == 0 {
		return nil
	}
	out := make([]Preset, 0, len(presets))
	for _, preset := range presets {
		out = append(out, Preset{Name: preset.Name, Label: preset.Label, Seconds: preset.Seconds})
	}
	return out
}

// FromAlarm converts an alarm record to its API representation.
func FromAlarm(a alarm.Alarm) Alarm {
	return Alarm{ID: a.ID, Time: a.Time, Label: a.Label, Active: a.Active}
}

// FromAlarms converts a slice of alarm records into API DTOs.
func FromAlarms(alarms []alarm.Alarm) []Alarm {
	if len(alarms) == 0 {
		return nil
	}
	out := make([]Alarm, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, FromAlarm(a))
	}
	return out
}

// FromSession converts a study session record to its API representation.
func FromSession(session store.Session) Session {
	dto := Session{
		ID:              session.ID,
		DurationMinutes: session.DurationMinutes,
		SessionType:     session.SessionType,
		FocusScore:      session.FocusScore,
		Notes:           session.Notes,
	}
	if !session.StartTime.IsZero() {
		dto.StartTime = session.StartTime.UTC().Format(dateTimeFormat)
	}
	if !session.EndTime.IsZero() {
		dto.EndTime = session.EndTime.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromSessions converts a slice of session records into API DTOs.
func FromSessions(sessions []store.Session) []Session {
	if len(sessions) == 0 {
		return nil
	}
	out := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, FromSession(session))
	}
	return out
}

// FromStats converts aggregate statistics to the API payload. days is the
// requested lookback window.
func FromStats(stats store.Stats, days int) Stats {
	return Stats{
		Days:              days,
		TotalMinutes:      stats.TotalMinutes,
		TotalHours:        stats.TotalHours,
		SessionCount:      stats.SessionCount,
		AvgSessionMinutes: stats.AvgSessionMinutes,
		TodayMinutes:      stats.TodayMinutes,
		DailyAverage:      stats.DailyAverage,
	}
}

// FromGoal converts a goal record to its API representation.
func FromGoal(goal store.Goal) Goal {
	return Goal{
		Date:             goal.Date,
		DailyGoalMinutes: goal.DailyGoalMinutes,
		ActualMinutes:    goal.ActualMinutes,
		GoalAchieved:     goal.GoalAchieved,
	}
}

// FromDocument converts a document record to its API representation.
func FromDocument(doc *store.Document) Document {
	if doc == nil {
		return Document{}
	}
	dto := Document{
		ID:        doc.ID,
		Filename:  doc.Filename,
		FileType:  doc.FileType,
		FileSize:  doc.FileSize,
		WordCount: doc.WordCount,
	}
	if !doc.UploadDate.IsZero() {
		dto.UploadDate = doc.UploadDate.UTC().Format(dateTimeFormat)
	}
	if raw := strings.TrimSpace(doc.AnalysisData); raw != "" {
		dto.Analysis = json.RawMessage(raw)
	}
	return dto
}

// FromDocuments converts a slice of document records into API DTOs.
func FromDocuments(docs []*store.Document) []Document {
	if len(docs) == 0 {
		return nil
	}
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromDocument(doc))
	}
	return out
}

// FromSettings converts the stored settings blob to its API representation.
func FromSettings(settings store.Settings) Settings {
	return Settings{
		AIProvider:       settings.AIProvider,
		DeepSeekAPIKey:   settings.DeepSeekAPIKey,
		OllamaEndpoint:   settings.OllamaEndpoint,
		OllamaModel:      settings.OllamaModel,
		DailyGoalMinutes: settings.DailyGoalMinutes,
		Theme:            settings.Theme,
	}
}

// ToSettings converts an API settings payload back to the storage type.
func ToSettings(settings Settings) store.Settings {
	return store.Settings{
		AIProvider:       settings.AIProvider,
		DeepSeekAPIKey:   settings.DeepSeekAPIKey,
		OllamaEndpoint:   settings.OllamaEndpoint,
		OllamaModel:      settings.OllamaModel,
		DailyGoalMinutes: settings.DailyGoalMinutes,
		Theme:            settings.Theme,
	}
}
