// Package tree arranges search results into a path hierarchy.
//
// Build detects the common directory prefix of the result set, strips it and
// inserts each remaining path into a tree of directory and file nodes.
// Render produces a box-drawing text view for terminal display, and
// RewriteRoot re-bases the result paths onto a different root using the same
// prefix detection.
package tree
