package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ScanRecords streams every indexed record to fn in path order, which is the
// store's stable iteration order. Iteration stops early when fn returns
// false. The records fn receives are valid only for the duration of the
// call; copy them if they must outlive it.
func (d *Database) ScanRecords(ctx context.Context, fn func(FileRecord) bool) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("scan_records", start, err) }()

	d.mu.RLock()
	rows, err := d.db.QueryContext(ctx, "SELECT path, name, mtime, size FROM files ORDER BY path")
	d.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("record scan failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec FileRecord
		var mtime sql.NullFloat64
		var size sql.NullInt64

		if err = rows.Scan(&rec.Path, &rec.Name, &mtime, &size); err != nil {
			return fmt.Errorf("record scan failed: %w", err)
		}
		if mtime.Valid {
			rec.MTime = &mtime.Float64
		}
		if size.Valid {
			rec.Size = &size.Int64
		}

		if !fn(rec) {
			return nil
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("record scan failed: %w", err)
	}
	return nil
}

// GetRecord retrieves a single record by its path key.
func (d *Database) GetRecord(ctx context.Context, path string) (*FileRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_record", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec FileRecord
	var mtime sql.NullFloat64
	var size sql.NullInt64

	err = d.db.QueryRowContext(ctx,
		"SELECT path, name, mtime, size FROM files WHERE path = ?", path).
		Scan(&rec.Path, &rec.Name, &mtime, &size)
	if err != nil {
		return nil, err
	}

	if mtime.Valid {
		rec.MTime = &mtime.Float64
	}
	if size.Valid {
		rec.Size = &size.Int64
	}
	return &rec, nil
}

// Stats reports record count and last-index metadata for this database.
func (d *Database) Stats(ctx context.Context) (IndexStats, error) {
	count, err := d.CountRecords(ctx)
	if err != nil {
		return IndexStats{}, err
	}

	stats := IndexStats{
		TotalRecords: count,
		DatabasePath: d.dbPath,
	}

	if last, err := d.GetMeta(ctx, "last_indexed"); err == nil {
		stats.LastIndexed = last
	}
	if dur, err := d.GetMeta(ctx, "index_duration"); err == nil {
		stats.IndexDuration = dur
	}
	return stats, nil
}
