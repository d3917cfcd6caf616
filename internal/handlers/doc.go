// Package handlers implements the HTTP API: search, indexing, stats,
// history, export, and health endpoints.
package handlers
