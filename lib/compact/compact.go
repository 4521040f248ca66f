/*package compact closes the gaps that removing particles leaves in a
species' arrays. After a step some slots in [0, np) are dead, named by a
mover list, and downstream code expects the survivors to be contiguous over
[0, np-nm). Compact pulls replacement particles from the tail of the array
into those gaps, running every independent piece of work in parallel.

The hard part is that gap positions and pull positions can overlap in the
trailing 2*nm slots of the array (the "danger zone"). The kernel handles this
with three phases separated by full barriers:

 1. Mark which danger-zone slots are themselves gaps.
 2. Backfill each gap from the tail, skipping pulls the marks prove unsafe
    and recording them for later.
 3. Reconcile the recorded skips, now that phase 2's writes are visible.

Phase 2 guarantees that no two iterations write the same slot, because the
mover list is unique, so no locking is needed anywhere. The only primitives
used are the barrier between phases and an atomic append cursor for the
deferred lists.*/
package compact

import (
	"fmt"
	"runtime"

	"github.com/phil-mansfield/pico/lib/parallel"
	"github.com/phil-mansfield/pico/lib/particles"
)

// deferred records the backfills that phase 2 could not perform safely.
// from lists live tail particles that were stranded because their
// destination gap fell inside the shrinking trailing region. to lists gaps
// that still need a fill because their tail candidate was itself dead.
// These two conditions always fire the same number of times (see reconcile),
// and any pairing of the two lists produces the same surviving particle set.
type deferred struct {
	from, to []int32
	nFrom, nTo parallel.Counter
}

// Compact removes the particles named by movers from s, backfilling their
// slots so that the survivors are packed into [0, np - len(movers)). Every
// surviving particle's record is preserved whole; only its slot can change.
// Slots at and past np - len(movers) are left unspecified, and the caller is
// responsible for shrinking s.Np by len(movers) afterwards: Compact itself
// does not change the active count.
//
// The mover list is validated before any slot is touched. Compact mutates s
// in place, retains no reference to either argument, and holds no state
// across calls. workers <= 0 means one worker per CPU.
func Compact(s *particles.Species, movers particles.Movers, workers int) error {
	if err := movers.Validate(s.Np); err != nil { return err }

	nm := len(movers)
	if nm == 0 { return nil }
	if workers <= 0 { workers = runtime.NumCPU() }

	marker := markUnsafe(movers, s.Np, workers)

	d := &deferred{
		from: make([]int32, nm), to: make([]int32, nm),
	}
	backfill(s, movers, marker, d, workers)

	return reconcile(s, d, workers)
}

// markUnsafe builds the danger-zone marker array. marker[k] is true if array
// slot np-1-k is a gap, i.e. the marker is indexed in reverse: index 0 is
// the last particle, index 2*nm-1 is the first slot of the danger zone.
// Only the trailing 2*nm slots get a marker, which is enough to cover every
// slot the backfill phase can pull from.
//
// This is a scatter with no collisions, since movers are unique, so each
// iteration writes its own marker slot.
func markUnsafe(movers particles.Movers, np, workers int) []bool {
	nm := len(movers)
	marker := make([]bool, 2*nm)
	cutOff := np - 2*nm

	parallel.For(workers, nm, func(i int) {
		pmi := int(movers[i])
		if pmi >= cutOff {
			marker[(np-1) - pmi] = true
		}
	})

	return marker
}

// backfill fills each gap with a particle pulled from the tail of the array.
// Iteration n pulls from slot np-1-n and writes to movers[nm-1-n], walking
// the gaps in reverse mover order to match the serial algorithm. Every
// iteration owns a distinct writeTo slot, and the marker array (built before
// the phase barrier) tells it whether its pull candidate is live, so no
// iteration ever reads a slot another iteration writes.
func backfill(
	s *particles.Species, movers particles.Movers,
	marker []bool, d *deferred, workers int,
) {
	np, nm := s.Np, len(movers)
	dangerZone := np - nm

	parallel.For(workers, nm, func(n int) {
		pullFrom := (np - 1) - n
		writeTo := int(movers[nm - 1 - n])

		// Already where it needs to be. This can happen when a gap is one
		// of the last nm slots, and skipping it here keeps it off the
		// deferred lists.
		if pullFrom == writeTo { return }

		if writeTo >= dangerZone {
			// The gap falls off the end of the active range, so it doesn't
			// need a fill. But that strands the pull candidate: if it's a
			// live particle it still has to be rescued into some gap, which
			// phase 3 handles. marker index of pullFrom is (np-1)-pullFrom.
			if !marker[(np-1) - pullFrom] {
				d.from[d.nFrom.Next()] = int32(pullFrom)
			}
			return
		}

		// (np-1)-pullFrom == n, so marker[n] says whether the pull
		// candidate is itself a gap. Copying a gap would resurrect a
		// removed particle, so the destination waits for phase 3 instead.
		if marker[n] {
			d.to[d.nTo.Next()] = int32(writeTo)
			return
		}

		s.CopyRecord(writeTo, pullFrom)
	})
}

// reconcile resolves the deferred backfills: each stranded live tail
// particle is copied into one of the still-unfilled gaps. The two lists are
// always the same length on valid input. Both conditions fire once for each
// danger-zone tail slot whose pull/write pair splits across the np-nm
// boundary, so their counts are both k-c, where k is the number of gaps in
// the trailing nm slots and c is the number of iterations whose pull
// candidate is a gap and whose destination is also trailing. The pairing
// order is arbitrary, which is fine: any bijection from stranded particles
// to unfilled gaps yields the same surviving set, and no reconciled slot is
// touched by phase 2.
//
// A length mismatch can only come from a corrupted mover list or a kernel
// bug, and is reported rather than paired through.
func reconcile(s *particles.Species, d *deferred, workers int) error {
	nFrom, nTo := d.nFrom.Len(), d.nTo.Len()
	if nFrom != nTo {
		return fmt.Errorf("Internal error: reconciliation found %d " +
			"stranded particles but %d unfilled gaps. The mover list was " +
			"corrupted during compaction, or this kernel has a bug.",
			nFrom, nTo)
	}

	parallel.For(workers, nFrom, func(n int) {
		s.CopyRecord(int(d.to[n]), int(d.from[n]))
	})

	return nil
}

// compactSerial is the reference implementation: fill each gap below the
// cutoff with the highest live tail slot, one at a time. Tests compare
// Compact against it. It requires a valid mover list.
func compactSerial(s *particles.Species, movers particles.Movers) {
	np, nm := s.Np, len(movers)

	dead := make(map[int32]bool, nm)
	for _, pmi := range movers { dead[pmi] = true }

	tail := np - 1
	for _, pmi := range movers {
		writeTo := int(pmi)
		// Gaps in the trailing region fall off the end on their own.
		if writeTo >= np - nm { continue }

		for dead[int32(tail)] { tail-- }
		s.CopyRecord(writeTo, tail)
		tail--
	}
}
