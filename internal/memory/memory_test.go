package memory

import (
	"context"
	"testing"
	"time"
)

func TestNewMonitorExplicitLimit(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{
		MemoryLimitBytes:  1 << 30,
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     time.Second,
	})
	if m.limit != 1<<30 {
		t.Errorf("limit = %d, want %d", m.limit, 1<<30)
	}
	if m.IsPaused() {
		t.Error("new monitor should not be paused")
	}
}

func TestWaitIfPausedNotPaused(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{MemoryLimitBytes: 1 << 30})
	if !m.WaitIfPaused(context.Background()) {
		t.Error("WaitIfPaused() = false for unpaused monitor, want true")
	}
}

func TestWaitIfPausedReleasedOnStop(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{MemoryLimitBytes: 1 << 30})
	m.mu.Lock()
	m.isPaused = true
	m.mu.Unlock()

	done := make(chan bool, 1)
	go func() {
		done <- m.WaitIfPaused(context.Background())
	}()

	m.Stop()
	select {
	case ok := <-done:
		if ok {
			t.Error("WaitIfPaused() = true after Stop, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitIfPaused did not return after Stop")
	}
}

func TestWaitIfPausedReleasedOnCancel(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{MemoryLimitBytes: 1 << 30})
	m.mu.Lock()
	m.isPaused = true
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		done <- m.WaitIfPaused(ctx)
	}()

	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Error("WaitIfPaused() = true after cancel, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitIfPaused did not return after cancel")
	}
}

func TestWaitIfPausedReleasedOnResume(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{MemoryLimitBytes: 1 << 30})
	m.mu.Lock()
	m.isPaused = true
	m.mu.Unlock()

	done := make(chan bool, 1)
	go func() {
		done <- m.WaitIfPaused(context.Background())
	}()

	// Simulate the monitor loop observing recovery.
	m.mu.Lock()
	m.isPaused = false
	close(m.pauseChan)
	m.pauseChan = make(chan struct{})
	m.mu.Unlock()

	select {
	case ok := <-done:
		if !ok {
			t.Error("WaitIfPaused() = false after resume, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("WaitIfPaused did not return after resume")
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	m := NewMonitor(Config{MemoryLimitBytes: 1000})
	m.mu.Lock()
	m.current = 700
	m.mu.Unlock()

	current, limit, usage := m.GetStats()
	if current != 700 || limit != 1000 {
		t.Errorf("GetStats() = (%d, %d), want (700, 1000)", current, limit)
	}
	if usage != 0.7 {
		t.Errorf("usage = %v, want 0.7", usage)
	}
}

func TestCheckMemoryPausesAndResumes(t *testing.T) {
	t.Parallel()

	// Limit of 1 byte forces usage far past the critical mark.
	m := NewMonitor(Config{
		MemoryLimitBytes:  1,
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     time.Hour,
	})
	m.checkMemory()
	if !m.IsPaused() {
		t.Fatal("monitor should pause when usage exceeds the critical mark")
	}

	// Raising the limit far beyond any real heap drops usage below the
	// high water mark on the next check.
	m.mu.Lock()
	m.limit = 1 << 60
	m.mu.Unlock()
	m.checkMemory()
	if m.IsPaused() {
		t.Error("monitor should resume once usage falls below the high water mark")
	}
}
