/*
Package workers provides utilities for determining optimal worker pool sizes
in containerized environments.

When running in containers, the number of available CPUs may be limited by
cgroup constraints. Go 1.19+ automatically sets GOMAXPROCS based on container
CPU limits, but runtime.NumCPU() still returns the host machine's CPU count,
so worker pools sized from it oversubscribe throttled containers.

The package provides task-specific helper functions built on GOMAXPROCS:

	import "findex/internal/workers"

	// CPU-intensive tasks (hashing, compression): 1 worker per CPU
	n := workers.ForCPU(8)

	// I/O-bound tasks (directory traversal, database writes): 2 per CPU
	n := workers.ForIO(16)

	// Mixed workloads: 1.5 per CPU
	n := workers.ForMixed(12)

For fine-grained control use Count directly:

	n := workers.Count(3.0, 24) // 3 workers per CPU, max 24

All functions respect the INDEX_WORKERS environment variable, allowing
operators to override the automatic calculation:

	env:
	- name: INDEX_WORKERS
	  value: "4"
*/
package workers
