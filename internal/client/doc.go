// Package client implements the HTTP client the CLI uses to drive a running
// daemon through its REST API.
package client
