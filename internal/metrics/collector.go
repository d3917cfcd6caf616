package metrics

import (
	"time"

	"findex/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current index statistics
type Stats struct {
	TotalRecords    int64
	MainBytes       int64
	WALBytes        int64
	SHMBytes        int64
	OpenConnections int
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	IndexedRecordsTotal.Set(float64(stats.TotalRecords))
	DBSizeBytes.WithLabelValues("main").Set(float64(stats.MainBytes))
	DBSizeBytes.WithLabelValues("wal").Set(float64(stats.WALBytes))
	DBSizeBytes.WithLabelValues("shm").Set(float64(stats.SHMBytes))
	DBConnectionsOpen.Set(float64(stats.OpenConnections))

	logging.Debug("Metrics collected: records=%d, db=%d bytes, connections=%d",
		stats.TotalRecords, stats.MainBytes, stats.OpenConnections)
}
