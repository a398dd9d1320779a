package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertGoal records progress against the daily goal for one calendar date.
// One row exists per date; repeated calls replace the minutes and recompute
// goal_achieved.
func (s *Store) UpsertGoal(ctx context.Context, date time.Time, goalMinutes, actualMinutes int) error {
	if goalMinutes <= 0 {
		return errors.New("goal minutes must be positive")
	}
	now := time.Now().UTC()
	achieved := 0
	if actualMinutes >= goalMinutes {
		achieved = 1
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO study_goals (date, daily_goal_minutes, actual_minutes, goal_achieved, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(date) DO UPDATE SET
            daily_goal_minutes = excluded.daily_goal_minutes,
            actual_minutes = excluded.actual_minutes,
            goal_achieved = excluded.goal_achieved`,
		date.UTC().Format(dateOnly),
		goalMinutes,
		actualMinutes,
		achieved,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

// AddGoalProgress adds minutes to the date's goal row, creating it if absent.
func (s *Store) AddGoalProgress(ctx context.Context, date time.Time, goalMinutes, deltaMinutes int) error {
	existing, err := s.GoalForDate(ctx, date)
	if err != nil {
		return err
	}
	actual := deltaMinutes
	if existing != nil {
		actual += existing.ActualMinutes
	}
	return s.UpsertGoal(ctx, date, goalMinutes, actual)
}

// GoalForDate fetches the goal row for a calendar date. Returns nil when absent.
func (s *Store) GoalForDate(ctx context.Context, date time.Time) (*Goal, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, date, daily_goal_minutes, actual_minutes, goal_achieved, created_at
         FROM study_goals WHERE date = ?`,
		date.UTC().Format(dateOnly),
	)
	var (
		goal       Goal
		achieved   int
		createdRaw string
	)
	err := row.Scan(&goal.ID, &goal.Date, &goal.DailyGoalMinutes, &goal.ActualMinutes, &achieved, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	goal.GoalAchieved = achieved != 0
	goal.CreatedAt = parseTimestamp(createdRaw)
	return &goal, nil
}
