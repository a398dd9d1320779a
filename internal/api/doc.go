// Package api defines the transport-level payloads shared by the daemon's
// HTTP surface and the CLI client, plus converters from the internal domain
// types. Handlers and the client speak only these DTOs.
package api
