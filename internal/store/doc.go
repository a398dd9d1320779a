// Package store persists study data in a local SQLite database.
//
// Four tables are managed: study_sessions (immutable once written),
// documents (analysis_data mutated once when analysis completes),
// study_goals (one row per calendar date, upserted), and app_settings
// (a single JSON blob under a fixed key, overwritten wholesale on save).
//
// The store holds one database handle for the process lifetime. There is no
// cross-operation transaction or locking discipline; correctness relies on
// the daemon being the single writer.
package store
