package database

import (
	"context"
	"os"
	"time"

	"findex/internal/metrics"
)

// GetStats implements metrics.StatsProvider for the periodic collector.
func (d *Database) GetStats() metrics.Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := metrics.Stats{
		OpenConnections: d.db.Stats().OpenConnections,
	}
	if total, err := d.CountRecords(ctx); err == nil {
		stats.TotalRecords = total
	}

	stats.MainBytes = fileSize(d.dbPath)
	stats.WALBytes = fileSize(d.dbPath + "-wal")
	stats.SHMBytes = fileSize(d.dbPath + "-shm")
	return stats
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
