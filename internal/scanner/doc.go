// Package scanner implements the filesystem indexing pipeline.
//
// A scan runs in three stages connected by a bounded channel:
//
//   - Parallel walkers traverse the directory tree. Each directory expansion
//     runs as its own goroutine when a worker slot is free, inline otherwise.
//   - Walkers emit one FileRecord per regular file into the sink channel,
//     whose capacity (2x the batch size) provides backpressure.
//   - A single writer goroutine drains the sink, buffers records into
//     batches, and commits each batch as one transaction.
//
// Per-entry errors (unreadable subdirectory, vanished file) are counted and
// recorded but never abort the scan. An unreadable scan root fails eagerly
// with a *RootError; a batch that fails twice aborts the pipeline with a
// *WriteError carrying the committed record count.
package scanner
