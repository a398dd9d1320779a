// Package daemon hosts the long-running study dashboard process. It owns the
// SQLite store, the in-memory countdown and alarm state, and the HTTP surface
// (server-rendered dashboard plus the JSON API the CLI drives), and enforces
// single-instance execution with a file lock.
package daemon
