package lib

/* thread.go contains functions useful for multi-threading. */

import (
	"runtime"
)

// SetThreads sets the number of threads that pico will run on. Passing -1
// uses every core on the node. The number of threads actually in use is
// returned.
func SetThreads(n int) int {
	if n == -1 {
		n = runtime.NumCPU()
	} else if n < 1 || n > runtime.NumCPU() {
		ExternalErrorf("%d threads requested, but your system only has %d " +
			"cores per node. If you want pico to use the maximum number of " +
			"threads per node, set Threads = -1.", n, runtime.NumCPU())
	}

	runtime.GOMAXPROCS(n)
	return n
}
