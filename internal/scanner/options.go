package scanner

import "time"

// maxWalkWorkers caps the automatic worker calculation. Directory traversal
// is I/O-bound; beyond this, extra goroutines mostly contend on the disk.
const maxWalkWorkers = 16

// Options configures a scan.
type Options struct {
	// Root is the directory to index.
	Root string
	// BatchSize is the number of records committed per transaction.
	BatchSize int
	// ExtractMetadata stats each file for mtime and size. When false the
	// scan emits path and name only, which is considerably faster on
	// network filesystems.
	ExtractMetadata bool
	// Workers is the number of parallel traversal workers. 0 selects an
	// automatic value based on available CPUs.
	Workers int
	// SkipHidden skips files and directories starting with ".".
	SkipHidden bool
}

// DefaultOptions returns scan options with sensible defaults for root.
func DefaultOptions(root string) Options {
	return Options{
		Root:            root,
		BatchSize:       500,
		ExtractMetadata: true,
		Workers:         0,
		SkipHidden:      true,
	}
}

// Validate checks the options before any pipeline work starts.
func (o Options) Validate() error {
	if o.Root == "" {
		return &ConfigError{Field: "root", Reason: "must not be empty"}
	}
	if o.BatchSize <= 0 {
		return &ConfigError{Field: "batch_size", Reason: "must be positive"}
	}
	if o.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: "must not be negative"}
	}
	return nil
}

// Stats summarizes a completed scan.
type Stats struct {
	// Files is the number of records emitted to the writer.
	Files int64
	// Skipped is the number of entries dropped due to per-entry errors.
	Skipped int64
	// SkippedPaths lists the paths that were dropped.
	SkippedPaths []string
	// Duration is the wall-clock time of the scan.
	Duration time.Duration
}
