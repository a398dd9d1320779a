package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveSettings overwrites the stored settings blob wholesale.
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO app_settings (setting_key, setting_value, updated_at)
         VALUES (?, ?, ?)
         ON CONFLICT(setting_key) DO UPDATE SET
            setting_value = excluded.setting_value,
            updated_at = excluded.updated_at`,
		settingsKey,
		string(encoded),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadSettings reads the stored settings blob. A missing row yields the
// zero-value Settings, not an error.
func (s *Store) LoadSettings(ctx context.Context) (Settings, error) {
	var raw string
	row := s.db.QueryRowContext(
		ctx,
		`SELECT setting_value FROM app_settings WHERE setting_key = ?`,
		settingsKey,
	)
	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
