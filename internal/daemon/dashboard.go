package daemon

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"lockin/internal/alarm"
	"lockin/internal/store"
	"lockin/internal/timer"
)

//go:embed dashboard.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"clock": timer.FormatClock,
	"pct": func(progress float64) int {
		return int(progress * 100)
	},
}).ParseFS(dashboardFS, "dashboard.html"))

// dashboardView is the data handed to the dashboard template.
type dashboardView struct {
	Now            string
	Timer          timer.Snapshot
	Running        bool
	Completed      bool
	RefreshSeconds int
	Alarms         []alarm.Alarm
	DueAlarms      []alarm.Alarm
	Goal           *store.Goal
	GoalMinutes    int
	Stats          store.Stats
	Sessions       []store.Session
	Documents      []*store.Document
	Presets        []timer.Preset
}

// handleDashboard renders the study dashboard. While the countdown runs the
// handler blocks for one tick interval and advances the timer before
// rendering; the page refreshes itself immediately, which yields one tick
// per redraw.
func (s *apiServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := s.daemon.TimerSnapshot()
	completed := false
	if snap.Running() {
		select {
		case <-time.After(s.daemon.tickInterval()):
		case <-r.Context().Done():
			return
		}
		snap, completed = s.daemon.AdvanceTick(r.Context())
	} else if snap.State == timer.StateCompleted {
		completed = true
	}

	now := time.Now()
	view := dashboardView{
		Now:         now.Format("Mon Jan 2 15:04:05"),
		Timer:       snap,
		Running:     snap.Running(),
		Completed:   completed,
		Alarms:      s.daemon.AlarmList(),
		DueAlarms:   s.daemon.DueAlarms(now),
		GoalMinutes: s.daemon.goalMinutes(r.Context()),
		Presets:     timer.Presets(),
	}
	if view.Running {
		view.RefreshSeconds = 0
	} else {
		view.RefreshSeconds = 30
	}

	ctx := r.Context()
	if goal, err := s.daemon.store.GoalForDate(ctx, now); err == nil {
		view.Goal = goal
	}
	if stats, err := s.daemon.store.StatsSince(ctx, defaultStatsDays); err == nil {
		view.Stats = stats
	}
	if sessions, err := s.daemon.store.RecentSessions(ctx, 5); err == nil {
		view.Sessions = sessions
	}
	if docs, err := s.daemon.store.ListDocuments(ctx); err == nil {
		view.Documents = docs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, view); err != nil {
		s.log(ctx).Error("failed to render dashboard", slog.String("error", err.Error()))
	}
}
