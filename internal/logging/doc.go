// Package logging constructs slog loggers for the Lockin daemon and CLI.
//
// Two output formats are supported: a human-oriented console format used for
// interactive runs and a JSON format for log files. Loggers carry
// standardized attributes (component, request id, document id) so daemon
// request handling and store activity can be correlated.
package logging
