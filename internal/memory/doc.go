// Package memory provides heap limit configuration and a usage monitor.
//
// ConfigureFromEnv sets GOMEMLIMIT from a container memory limit passed via
// the MEMORY_LIMIT environment variable (Kubernetes Downward API), reserving
// headroom for SQLite, CGo allocations and goroutine stacks.
//
// Monitor periodically samples heap usage against the limit and pauses
// producers while usage is critical:
//
//	monitor := memory.NewMonitor(memory.DefaultConfig())
//	monitor.Start()
//	defer monitor.Stop()
//
//	for _, item := range work {
//	    if !monitor.WaitIfPaused(ctx) {
//	        return // monitor stopped or ctx cancelled
//	    }
//	    process(item)
//	}
package memory
