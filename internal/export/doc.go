// Package export writes search results grouped by keyword to YAML and reads
// them back. The document carries export metadata (time, version, totals) so
// consumers can validate what they are importing.
package export
