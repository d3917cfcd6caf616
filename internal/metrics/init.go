package metrics

// InitializeMetrics pre-populates labeled metrics with zero values so that
// every series is present from startup rather than appearing on first use.
func InitializeMetrics() {
	methods := []string{"GET", "POST"}
	paths := []string{"/api/search", "/api/index", "/api/stats", "/api/history", "/api/export", "/health", "/readyz"}
	statuses := []string{"200", "400", "404", "500", "503"}

	for _, method := range methods {
		for _, path := range paths {
			for _, status := range statuses {
				HTTPRequestsTotal.WithLabelValues(method, path, status).Add(0)
			}
			HTTPRequestDuration.WithLabelValues(method, path)
		}
	}

	operations := []string{
		"initialize_schema",
		"upsert_batch",
		"count_records",
		"get_record",
		"scan_records",
		"set_meta",
		"get_meta",
		"stats",
		"vacuum",
	}
	for _, op := range operations {
		for _, status := range []string{"success", "error"} {
			DBQueryTotal.WithLabelValues(op, status).Add(0)
		}
		DBQueryDuration.WithLabelValues(op)
	}

	for _, txType := range []string{"commit", "rollback"} {
		DBTransactionDuration.WithLabelValues(txType)
	}

	for _, file := range []string{"main", "wal", "shm"} {
		DBSizeBytes.WithLabelValues(file).Set(0)
	}

	for _, op := range []string{"stat", "readdir"} {
		FSStaleErrors.WithLabelValues(op).Add(0)
		FSRetrySuccess.WithLabelValues(op).Add(0)
	}

	for _, status := range []string{"success", "error"} {
		SearchesTotal.WithLabelValues(status).Add(0)
	}
}
