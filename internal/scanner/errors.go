package scanner

import "fmt"

// ConfigError reports an invalid scan option. It is returned eagerly by
// Options.Validate before any pipeline work starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid scan option %s: %s", e.Field, e.Reason)
}

// RootError reports that the scan root itself could not be read.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("scan root %s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// WriteError reports a batch write that failed after a retry and aborted the
// pipeline. Committed is the number of records durably written before the
// failing batch.
type WriteError struct {
	Committed int64
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("batch write failed after %d records committed: %v", e.Committed, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
