// Package filesystem wraps stat and directory reads with retry logic for
// stale NFS file handles, so scans of network mounts survive transient
// ESTALE errors.
package filesystem
