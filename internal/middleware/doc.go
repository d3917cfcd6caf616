// Package middleware provides HTTP middleware for the index server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics
//   - Gzip compression for JSON responses
package middleware
