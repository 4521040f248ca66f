/*package parallel contains the small data-parallel loop abstraction that
pico's compaction kernel is built on. It makes two guarantees and no others:
every index in the range is visited exactly once, and all writes made inside
the loop body are visible to the caller once the loop returns.*/
package parallel

import (
	"sync/atomic"
)

// For evaluates f(i) for every i in [0, n), splitting the work across the
// given number of goroutines. Iterations may run in any order and f must not
// assume forward progress of any other iteration. Returning from For is a
// full barrier: every call to f has returned and all of its writes are
// visible to the caller.
//
// If workers is less than 2, or the range is too small to split, the loop
// runs on the calling goroutine.
func For(workers, n int, f func(i int)) {
	if workers > n { workers = n }
	if workers <= 1 {
		for i := 0; i < n; i++ { f(i) }
		return
	}

	// One goroutine per worker except the last chunk, which runs on the
	// calling goroutine. The channel receive at the end is what gives For
	// its barrier semantics.
	out := make(chan int, workers)
	for id := 0; id < workers - 1; id++ {
		go runStrided(id, workers, n, f, out)
	}
	runStrided(workers - 1, workers, n, f, out)

	for i := 0; i < workers; i++ { <-out }
}

// runStrided runs the iterations id, id+workers, id+2*workers, ... of the
// loop and reports its id on out when it finishes.
func runStrided(id, workers, n int, f func(i int), out chan<- int) {
	for i := id; i < n; i += workers { f(i) }
	out <- id
}

// Counter is a shared counter that many loop iterations can increment at
// once. Next hands each caller a slot index that no other caller will
// receive, which makes Counter the append cursor for the kernel's deferred
// lists.
type Counter struct {
	n int32
}

// Next atomically increments the counter and returns its value prior to the
// increment.
func (c *Counter) Next() int {
	return int(atomic.AddInt32(&c.n, 1)) - 1
}

// Len returns the number of times Next has been called. It is only
// meaningful once all the incrementing loop iterations are past a barrier.
func (c *Counter) Len() int {
	return int(atomic.LoadInt32(&c.n))
}
