// Package main provides the entry point for findex.
//
// Findex builds a searchable index of file metadata (path, name, mtime,
// size) over very large directory trees and answers keyword queries over
// the index, either from the command line or over an HTTP API.
//
// # Commands
//
//	findex index -path /data -db data/index.findex.db
//	findex search -db data report 2024
//	findex serve
//
// # Application Lifecycle (serve)
//
// The server follows a structured initialization sequence:
//
//  1. Memory Configuration: Sets GOMEMLIMIT from environment or container limits
//  2. Configuration Loading: Layers YAML file config under environment variables
//  3. Database Initialization: Opens the SQLite index with WAL journaling
//  4. Component Initialization:
//     - Metrics Collector: Gathers Prometheus metrics
//     - Search History: Loads the persisted query log
//  5. HTTP Server Setup: Configures routes, middleware, and starts the server
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components cleanly
//
// # Indexing
//
// Directory trees are walked by a bounded pool of concurrent walkers that
// feed a single batch writer. Stat calls retry transient NFS stale handle
// errors, and a memory monitor pauses the walkers under heap pressure so
// scans of tens of millions of files stay inside a container memory limit.
package main
