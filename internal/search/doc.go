// Package search implements keyword matching over the file index.
//
// A query is split into keywords on a configurable delimiter set; a record
// matches when every keyword is a substring of its name (or full path, when
// path search is enabled). Matching is case-insensitive by default.
package search
