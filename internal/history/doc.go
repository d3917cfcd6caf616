// Package history persists recent search queries to a JSON file.
//
// Entries are kept newest first and the file is bounded to a fixed number of
// entries. The default location is under the user config directory.
package history
