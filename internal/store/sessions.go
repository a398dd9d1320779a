package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// AddSession inserts a completed study session and returns its id.
func (s *Store) AddSession(ctx context.Context, session Session) (int64, error) {
	if session.DurationMinutes < 0 {
		return 0, errors.New("duration must not be negative")
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO study_sessions (
            start_time, end_time, duration_minutes, session_type, focus_score, notes, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.StartTime.UTC().Format(time.RFC3339Nano),
		session.EndTime.UTC().Format(time.RFC3339Nano),
		session.DurationMinutes,
		session.SessionType,
		session.FocusScore,
		session.Notes,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// StatsSince aggregates sessions whose start time falls within the last
// `days` days.
func (s *Store) StatsSince(ctx context.Context, days int) (Stats, error) {
	if days <= 0 {
		return Stats{}, errors.New("days must be positive")
	}

	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -days).Format(time.RFC3339Nano)

	var stats Stats
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(duration_minutes), 0), COUNT(1)
         FROM study_sessions WHERE start_time >= ?`,
		windowStart,
	)
	if err := row.Scan(&stats.TotalMinutes, &stats.SessionCount); err != nil {
		return Stats{}, fmt.Errorf("aggregate window: %w", err)
	}

	todayStart := now.Truncate(24 * time.Hour).Format(time.RFC3339Nano)
	row = s.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(duration_minutes), 0)
         FROM study_sessions WHERE start_time >= ?`,
		todayStart,
	)
	if err := row.Scan(&stats.TodayMinutes); err != nil {
		return Stats{}, fmt.Errorf("aggregate today: %w", err)
	}

	stats.TotalHours = round1(float64(stats.TotalMinutes) / 60)
	if stats.SessionCount > 0 {
		stats.AvgSessionMinutes = round1(float64(stats.TotalMinutes) / float64(stats.SessionCount))
	}
	// The denominator is the requested window length, not days with recorded
	// activity, so the average under-reports when history is shorter than
	// the window. Kept as specified behavior.
	stats.DailyAverage = round1(float64(stats.TotalMinutes) / float64(days))

	return stats, nil
}

// RecentSessions returns the most recently started sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, start_time, end_time, duration_minutes, session_type, focus_score, notes, created_at
         FROM study_sessions ORDER BY start_time DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			session    Session
			startRaw   string
			endRaw     string
			createdRaw string
		)
		if err := rows.Scan(
			&session.ID,
			&startRaw,
			&endRaw,
			&session.DurationMinutes,
			&session.SessionType,
			&session.FocusScore,
			&session.Notes,
			&createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.StartTime = parseTimestamp(startRaw)
		session.EndTime = parseTimestamp(endRaw)
		session.CreatedAt = parseTimestamp(createdRaw)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
