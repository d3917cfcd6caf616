package database

// FileRecord is one indexed filesystem entry. Path is the unique key and is
// stored with the separators of the filesystem that produced it. Name is
// always the final path component, denormalized for search performance.
// MTime (epoch seconds) and Size are nil when the record was produced by a
// fast scan that skipped metadata.
type FileRecord struct {
	Path  string   `json:"path"`
	Name  string   `json:"name"`
	MTime *float64 `json:"mtime,omitempty"`
	Size  *int64   `json:"size,omitempty"`
}

// IndexStats summarizes the contents of one database.
type IndexStats struct {
	TotalRecords  int64  `json:"totalRecords"`
	DatabasePath  string `json:"databasePath"`
	LastIndexed   string `json:"lastIndexed,omitempty"`
	IndexDuration string `json:"indexDuration,omitempty"`
}
