package api

import "encoding/json"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// TimerState describes the countdown in a transport-friendly format.
type TimerState struct {
	State            string  `json:"state"`
	RemainingSeconds int     `json:"remainingSeconds"`
	TotalSeconds     int     `json:"totalSeconds"`
	SessionType      string  `json:"sessionType,omitempty"`
	Display          string  `json:"display"`
	Progress         float64 `json:"progress"`
	StartedAt        string  `json:"startedAt,omitempty"`
	Completed        bool    `json:"completed,omitempty"`
}

// TimerStartRequest starts a countdown with an explicit duration or a named
// preset. Preset wins when both are set.
type TimerStartRequest struct {
	Seconds     int    `json:"seconds,omitempty"`
	SessionType string `json:"sessionType,omitempty"`
	Preset      string `json:"preset,omitempty"`
}

// TimerResponse wraps the countdown state returned by timer commands.
type TimerResponse struct {
	Timer TimerState `json:"timer"`
}

// Preset describes a quick-start countdown duration.
type Preset struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

// PresetListResponse wraps the available presets.
type PresetListResponse struct {
	Presets []Preset `json:"presets"`
}

// Alarm describes one alarm entry.
type Alarm struct {
	ID     int64  `json:"id"`
	Time   string `json:"time"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// AlarmCreateRequest adds an alarm at a 24-hour HH:MM time of day.
type AlarmCreateRequest struct {
	Time  string `json:"time"`
	Label string `json:"label,omitempty"`
}

// AlarmListResponse wraps a collection of alarms.
type AlarmListResponse struct {
	Alarms []Alarm `json:"alarms"`
}

// AlarmResponse wraps a single alarm.
type AlarmResponse struct {
	Alarm Alarm `json:"alarm"`
}

// Session describes a completed study session.
type Session struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	SessionType     string `json:"sessionType"`
	FocusScore      int    `json:"focusScore,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// SessionListResponse wraps recent study sessions.
type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

// Stats aggregates study sessions over a lookback window.
type Stats struct {
	Days              int     `json:"days"`
	TotalMinutes      int     `json:"totalMinutes"`
	TotalHours        float64 `json:"totalHours"`
	SessionCount      int     `json:"sessionCount"`
	AvgSessionMinutes float64 `json:"avgSessionMinutes"`
	TodayMinutes      int     `json:"todayMinutes"`
	DailyAverage      float64 `json:"dailyAverage"`
}

// StatsResponse wraps the aggregate statistics payload.
type StatsResponse struct {
	Stats Stats `json:"stats"`
}

// Goal describes daily goal progress for one calendar date.
type Goal struct {
	Date             string `json:"date"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes"`
	ActualMinutes    int    `json:"actualMinutes"`
	GoalAchieved     bool   `json:"goalAchieved"`
}

// GoalResponse wraps a single goal record.
type GoalResponse struct {
	Goal Goal `json:"goal"`
}

// Document describes an uploaded document and its extraction results.
type Document struct {
	ID         int64           `json:"id"`
	Filename   string          `json:"filename"`
	FileType   string          `json:"fileType"`
	UploadDate string          `json:"uploadDate,omitempty"`
	FileSize   int64           `json:"fileSize"`
	WordCount  int             `json:"wordCount"`
	Analysis   json.RawMessage `json:"analysis,omitempty"`
}

// DocumentListResponse wraps a collection of documents.
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}

// DocumentResponse wraps a single document, optionally with the text
// extracted during upload.
type DocumentResponse struct {
	Document Document `json:"document"`
	Content  string   `json:"content,omitempty"`
}

// Settings is the persisted application configuration blob. Saves overwrite
// the whole record.
type Settings struct {
	AIProvider       string `json:"aiProvider,omitempty"`
	DeepSeekAPIKey   string `json:"deepseekApiKey,omitempty"`
	OllamaEndpoint   string `json:"ollamaEndpoint,omitempty"`
	OllamaModel      string `json:"ollamaModel,omitempty"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes,omitempty"`
	Theme            string `json:"theme,omitempty"`
}

// SettingsResponse wraps the stored settings.
type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

// ChatRequest sends a free-form message to the configured AI provider.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the provider's reply.
type ChatResponse struct {
	Provider string `json:"provider"`
	Reply    string `json:"reply"`
}

// AnalysisResult carries structured document insights.
type AnalysisResult struct {
	KeyTopics       []string       `json:"key_topics"`
	Weightage       []int          `json:"weightage"`
	Summary         string         `json:"summary"`
	QuestionFormats map[string]int `json:"question_formats"`
}

// AnalysisResponse wraps analysis output for one document.
type AnalysisResponse struct {
	DocumentID int64          `json:"documentId"`
	Provider   string         `json:"provider"`
	Result     AnalysisResult `json:"result"`
}

// State bundles the live dashboard state for polling clients.
type State struct {
	Timer     TimerState `json:"timer"`
	Alarms    []Alarm    `json:"alarms"`
	DueAlarms []Alarm    `json:"dueAlarms,omitempty"`
	Goal      Goal       `json:"goal"`
}

// StateResponse wraps the live state payload.
type StateResponse struct {
	State State `json:"state"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool       `json:"running"`
	PID          int        `json:"pid"`
	DatabasePath string     `json:"databasePath"`
	LockFilePath string     `json:"lockFilePath"`
	Provider     string     `json:"provider"`
	Timer        TimerState `json:"timer"`
	AlarmCount   int        `json:"alarmCount"`
	TodayMinutes int        `json:"todayMinutes"`
	GoalMinutes  int        `json:"goalMinutes"`
}

// StatusResponse wraps the daemon status payload.
type StatusResponse struct {
	Status DaemonStatus `json:"status"`
}
