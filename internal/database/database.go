package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"findex/internal/logging"
	"findex/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database manages one SQLite index file. The zero value is not usable;
// call New.
//
// Writes are serialized through BeginBatch/EndBatch by a single logical
// owner (the indexing pipeline's batch writer). Reads may run concurrently.
type Database struct {
	db      *sql.DB
	dbPath  string
	mu      sync.RWMutex
	txStart time.Time // set by BeginBatch, read by EndBatch for metrics
}

// New opens (creating if necessary) the index database at dbPath.
// The parent directory must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	// WAL keeps readers unblocked while the batch writer commits;
	// busy_timeout prevents spurious "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_temp_store=MEMORY&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Multiple readers, one writer.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Debug("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		mtime REAL,
		size INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_files_name ON files(name COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	start := time.Now()
	_, err := d.db.ExecContext(ctx, schema)
	recordQuery("initialize_schema", start, err)
	return err
}

// Path returns the filesystem location of the database file.
func (d *Database) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// BeginBatch starts a transaction for batch writes. The caller must finish
// it with EndBatch.
func (d *Database) BeginBatch() (*sql.Tx, error) {
	d.mu.Lock()
	d.txStart = time.Now()

	// Background context: the transaction's lifetime is owned by EndBatch,
	// so a timeout context deferred here would cancel it on return.
	tx, err := d.db.BeginTx(context.Background(), nil)
	d.mu.Unlock()

	return tx, err
}

// EndBatch commits the transaction, or rolls it back when err is non-nil.
func (d *Database) EndBatch(tx *sql.Tx, err error) error {
	duration := time.Since(d.txStart).Seconds()

	if err != nil {
		metrics.DBTransactionDuration.WithLabelValues("rollback").Observe(duration)
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback also failed: %w", rbErr))
		}
		return err
	}

	metrics.DBTransactionDuration.WithLabelValues("commit").Observe(duration)
	return tx.Commit()
}

// UpsertRecord inserts or fully replaces a record within a transaction.
// A re-indexed path overwrites all prior fields; no history is kept.
func (d *Database) UpsertRecord(tx *sql.Tx, rec *FileRecord) error {
	query := `
	INSERT INTO files (path, name, mtime, size)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		mtime = excluded.mtime,
		size = excluded.size
	`

	_, err := tx.ExecContext(context.Background(), query,
		rec.Path,
		rec.Name,
		rec.MTime,
		rec.Size,
	)
	return err
}

// UpsertBatch writes all records in one atomic transaction.
func (d *Database) UpsertBatch(records []FileRecord) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	defer func() { recordQuery("upsert_batch", start, err) }()

	tx, err := d.BeginBatch()
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}

	for i := range records {
		if err = d.UpsertRecord(tx, &records[i]); err != nil {
			err = fmt.Errorf("failed to upsert %s: %w", records[i].Path, err)
			return d.EndBatch(tx, err)
		}
	}

	if err = d.EndBatch(tx, nil); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// CountRecords returns the number of indexed entries.
func (d *Database) CountRecords(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_records", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int64
	err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&count)
	return count, err
}

// SetMeta stores a key/value pair in the metadata table.
func (d *Database) SetMeta(ctx context.Context, key, value string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_meta", start, err) }()

	_, err = d.db.ExecContext(ctx,
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// GetMeta reads a value from the metadata table; missing keys yield "".
func (d *Database) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Vacuum optimizes the database file.
func (d *Database) Vacuum() error {
	start := time.Now()
	var err error
	defer func() { recordQuery("vacuum", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "VACUUM")
	return err
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// UpdateDBMetrics updates database connection metrics
func (d *Database) UpdateDBMetrics() {
	stats := d.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}
