// Package pathutil provides separator-aware path utilities for indexed
// entries.
//
// Indexed paths keep the separators of the filesystem that produced them,
// so a database built on Windows carries backslash paths even when it is
// searched on another platform. Every function in this package detects the
// separator from the path itself instead of assuming the host convention.
package pathutil
