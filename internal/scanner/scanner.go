package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"findex/internal/database"
	"findex/internal/filesystem"
	"findex/internal/logging"
	"findex/internal/memory"
	"findex/internal/metrics"
	"findex/internal/workers"
)

// RecordStore is the store contract the pipeline writes to.
type RecordStore interface {
	UpsertBatch(records []database.FileRecord) error
}

// pipeline holds the shared state of one scan.
type pipeline struct {
	opts  Options
	retry filesystem.RetryConfig
	mem   *memory.Monitor
	sink  chan database.FileRecord
	sem   chan struct{}
	wg    sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	files   atomic.Int64
	skipped atomic.Int64

	mu           sync.Mutex
	skippedPaths []string
}

// Scan walks opts.Root and writes every regular file into store. It returns
// once all walkers have finished and the final batch is committed.
func Scan(ctx context.Context, store RecordStore, opts Options) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}

	// Read the root eagerly so an unreadable root fails before the
	// pipeline starts. The entries are reused by the first walker.
	rootEntries, err := os.ReadDir(opts.Root)
	if err != nil {
		return Stats{}, &RootError{Root: opts.Root, Err: err}
	}

	numWorkers := opts.Workers
	if numWorkers == 0 {
		numWorkers = workers.ForIO(maxWalkWorkers)
	}

	logging.Info("Starting scan of %s with %d workers (batch size %d, metadata=%v)",
		opts.Root, numWorkers, opts.BatchSize, opts.ExtractMetadata)

	start := time.Now()
	metrics.ScanRunsTotal.Inc()
	metrics.ScanIsRunning.Set(1)
	defer metrics.ScanIsRunning.Set(0)
	metrics.ScanWorkers.Set(float64(numWorkers))

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Inert unless GOMEMLIMIT (or MEMORY_LIMIT) gives it a budget.
	mem := memory.NewMonitor(memory.DefaultConfig())
	mem.Start()
	defer mem.Stop()

	p := &pipeline{
		opts:   opts,
		retry:  filesystem.DefaultRetryConfig(),
		mem:    mem,
		sink:   make(chan database.FileRecord, 2*opts.BatchSize),
		sem:    make(chan struct{}, numWorkers),
		ctx:    cctx,
		cancel: cancel,
	}

	done := make(chan error, 1)
	go p.writer(store, done)

	p.walkEntries(opts.Root, rootEntries)
	p.wg.Wait()
	close(p.sink)
	writeErr := <-done

	stats := Stats{
		Files:        p.files.Load(),
		Skipped:      p.skipped.Load(),
		SkippedPaths: p.skippedPaths,
		Duration:     time.Since(start),
	}

	metrics.ScanFilesTotal.Add(float64(stats.Files))
	metrics.ScanSkippedTotal.Add(float64(stats.Skipped))
	metrics.ScanLastRunDuration.Set(stats.Duration.Seconds())
	metrics.ScanLastRunTimestamp.Set(float64(time.Now().Unix()))

	if writeErr != nil {
		metrics.ScanErrors.Inc()
		logging.Error("Scan of %s aborted: %v", opts.Root, writeErr)
		return stats, writeErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	logging.Info("Scan complete: %d files in %v (skipped: %d)",
		stats.Files, stats.Duration, stats.Skipped)
	return stats, nil
}

// walkDir reads a subdirectory and processes its entries. Read failures are
// recorded and the subtree is dropped.
func (p *pipeline) walkDir(dir string) {
	entries, err := filesystem.ReadDirWithRetry(dir, p.retry)
	if err != nil {
		p.skip(dir, err)
		return
	}
	p.walkEntries(dir, entries)
}

// walkEntries processes one directory's entries, spawning a goroutine per
// subdirectory when a worker slot is free and recursing inline otherwise.
func (p *pipeline) walkEntries(dir string, entries []os.DirEntry) {
	for _, entry := range entries {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		name := entry.Name()
		if p.opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			select {
			case p.sem <- struct{}{}:
				p.wg.Add(1)
				go func() {
					defer p.wg.Done()
					defer func() { <-p.sem }()
					p.walkDir(path)
				}()
			default:
				p.walkDir(path)
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		rec := database.FileRecord{Path: path, Name: name}
		if p.opts.ExtractMetadata {
			info, err := entry.Info()
			if err != nil {
				// Stale NFS handles are worth a retry; a file that truly
				// vanished between listing and stat is skipped.
				info, err = filesystem.StatWithRetry(path, p.retry)
			}
			if err != nil {
				p.skip(path, err)
				continue
			}
			mtime := float64(info.ModTime().UnixNano()) / 1e9
			size := info.Size()
			rec.MTime = &mtime
			rec.Size = &size
		}

		if !p.mem.WaitIfPaused(p.ctx) {
			return
		}

		select {
		case p.sink <- rec:
			p.files.Add(1)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *pipeline) skip(path string, err error) {
	p.skipped.Add(1)
	p.mu.Lock()
	p.skippedPaths = append(p.skippedPaths, path)
	p.mu.Unlock()
	logging.Debug("Skipping %s: %v", path, err)
}

// writer drains the sink, buffers records into batches and commits each batch
// as one transaction. A batch that fails twice aborts the pipeline.
func (p *pipeline) writer(store RecordStore, done chan<- error) {
	var committed int64
	batch := make([]database.FileRecord, 0, p.opts.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.UpsertBatch(batch); err != nil {
			metrics.BatchRetries.Inc()
			logging.Warn("Batch write failed, retrying once: %v", err)
			if err = store.UpsertBatch(batch); err != nil {
				return err
			}
		}
		committed += int64(len(batch))
		metrics.BatchesCommitted.Inc()
		batch = batch[:0]
		return nil
	}

	for rec := range p.sink {
		batch = append(batch, rec)
		if len(batch) >= p.opts.BatchSize {
			if err := flush(); err != nil {
				p.cancel()
				// Unblock producers still sending
				for range p.sink {
				}
				done <- &WriteError{Committed: committed, Err: err}
				return
			}
		}
	}

	// Final partial batch
	if err := flush(); err != nil {
		done <- &WriteError{Committed: committed, Err: err}
		return
	}
	done <- nil
}
