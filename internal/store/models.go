package store

import "time"

// Session is a completed study session. Rows are immutable once inserted.
type Session struct {
	ID              int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	SessionType     string
	FocusScore      int
	Notes           string
	CreatedAt       time.Time
}

// Document is an uploaded file with extraction results. AnalysisData is
// empty until analysis completes and is written exactly once.
type Document struct {
	ID           int64
	Filename     string
	FileType     string
	UploadDate   time.Time
	FileSize     int64
	WordCount    int
	AnalysisData string
	CreatedAt    time.Time
}

// Goal tracks progress against the daily study goal for one calendar date.
type Goal struct {
	ID               int64
	Date             string // YYYY-MM-DD
	DailyGoalMinutes int
	ActualMinutes    int
	GoalAchieved     bool
	CreatedAt        time.Time
}

// Stats aggregates study sessions over a lookback window.
type Stats struct {
	TotalMinutes      int     `json:"totalMinutes"`
	TotalHours        float64 `json:"totalHours"`
	SessionCount      int     `json:"sessionCount"`
	AvgSessionMinutes float64 `json:"avgSessionMinutes"`
	TodayMinutes      int     `json:"todayMinutes"`
	DailyAverage      float64 `json:"dailyAverage"`
}

// Settings is the application configuration blob stored under the fixed
// app_config key. Saves overwrite the whole record; there is no merge.
type Settings struct {
	AIProvider       string `json:"aiProvider,omitempty"`
	DeepSeekAPIKey   string `json:"deepseekApiKey,omitempty"`
	OllamaEndpoint   string `json:"ollamaEndpoint,omitempty"`
	OllamaModel      string `json:"ollamaModel,omitempty"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes,omitempty"`
	Theme            string `json:"theme,omitempty"`
}

// settingsKey is the fixed logical key the settings blob lives under.
const settingsKey = "app_config"

// dateOnly is the calendar-date layout used by study_goals and today filters.
const dateOnly = "2006-01-02"
