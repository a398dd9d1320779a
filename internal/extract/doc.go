// Package extract turns uploaded file bytes into normalized plain text and
// coarse complexity metrics.
//
// Extraction is advisory and best-effort: it never returns an error. Every
// failure path resolves to a human-readable placeholder string so a
// malformed or unsupported upload can never take the dashboard down. PDF
// input is tried against two parsers in priority order; DOCX and plain text
// have single decoders with degraded fallbacks.
package extract
