package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findex_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findex_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findex_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findex_db_transaction_duration_seconds",
			Help:    "Database transaction duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"type"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DBSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "findex_db_size_bytes",
			Help: "Size of SQLite database files in bytes",
		},
		[]string{"file"}, // "main", "wal", "shm"
	)
)

// Indexing pipeline metrics
var (
	IndexedRecordsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_indexed_records_total",
			Help: "Number of file records currently in the index",
		},
	)

	ScanRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_scan_runs_total",
			Help: "Total number of index scans",
		},
	)

	ScanLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_scan_last_run_timestamp",
			Help: "Timestamp of the last completed scan",
		},
	)

	ScanLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_scan_last_run_duration_seconds",
			Help: "Duration of the last completed scan in seconds",
		},
	)

	ScanFilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_scan_files_total",
			Help: "Total number of files emitted by scans",
		},
	)

	ScanSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_scan_skipped_total",
			Help: "Total number of entries skipped due to per-entry errors",
		},
	)

	ScanErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_scan_errors_total",
			Help: "Total number of fatal scan errors",
		},
	)

	ScanIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_scan_running",
			Help: "Whether a scan is currently running (1 = running, 0 = idle)",
		},
	)

	ScanWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_scan_workers",
			Help: "Number of parallel traversal workers for the current scan",
		},
	)

	BatchesCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_batches_committed_total",
			Help: "Total number of record batches committed to the store",
		},
	)

	BatchRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_batch_retries_total",
			Help: "Total number of batch transactions retried after failure",
		},
	)

	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_memory_usage_ratio",
			Help: "Heap usage as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findex_memory_paused",
			Help: "Whether scan producers are paused for memory pressure (1 = paused)",
		},
	)

	MemoryGCForced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findex_memory_gc_forced_total",
			Help: "Total number of garbage collections forced by memory pressure",
		},
	)

	FSStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findex_fs_stale_errors_total",
			Help: "Total number of NFS stale file handle errors encountered",
		},
		[]string{"operation"},
	)

	FSRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findex_fs_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation"},
	)
)

// Search metrics
var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findex_searches_total",
			Help: "Total number of search queries",
		},
		[]string{"status"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "findex_search_duration_seconds",
			Help:    "Search query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchResultsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "findex_search_results_returned",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 2000, 5000},
		},
	)
)
