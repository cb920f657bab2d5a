package ecs

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Schedule is an ordered sequence of batches over system indices. Systems in
// one batch have pairwise non-conflicting access sets and may run fully in
// parallel; batches execute strictly in sequence. The schedule is computed
// once when the scheduler starts and reused unchanged for every frame.
type Schedule struct {
	batches     [][]int
	fingerprint uint64
}

// Batches returns the batch sequence as system indices in registration order.
func (s *Schedule) Batches() [][]int {
	out := make([][]int, len(s.batches))
	for i, b := range s.batches {
		out[i] = append([]int(nil), b...)
	}
	return out
}

// Fingerprint is a stable hash over the registered system set (names and
// access masks). Two schedulers with the same registrations produce the same
// fingerprint.
func (s *Schedule) Fingerprint() uint64 {
	return s.fingerprint
}

// conflicts implements the access-set conflict relation: two systems conflict
// iff one writes what the other reads or writes. The test is symmetric and
// looks only at declarations, never at transform behavior.
func conflicts(a, b *systemEntry) bool {
	return a.write.intersects(b.read) ||
		a.write.intersects(b.write) ||
		a.read.intersects(b.write)
}

// buildSchedule partitions systems into batches by deterministic first-fit:
// walk systems in registration order and place each into the earliest batch
// it does not conflict with, opening a new batch when none fits. Not an
// optimal coloring, but deterministic and O(S^2) for a small fixed S.
func buildSchedule(systems []*systemEntry) *Schedule {
	sched := &Schedule{}

	type batchMask struct {
		read  accessMask
		write accessMask
	}
	var masks []batchMask

	for i, sys := range systems {
		placed := false
		for bi := range sched.batches {
			// A candidate fits iff its writes miss the batch's reads and
			// writes, and its reads miss the batch's writes. Union masks
			// make that a constant-time test.
			if sys.write.intersects(masks[bi].read) ||
				sys.write.intersects(masks[bi].write) ||
				sys.read.intersects(masks[bi].write) {
				continue
			}
			sched.batches[bi] = append(sched.batches[bi], i)
			for w := range 4 {
				masks[bi].read[w] |= sys.read[w]
				masks[bi].write[w] |= sys.write[w]
			}
			placed = true
			break
		}
		if !placed {
			sched.batches = append(sched.batches, []int{i})
			masks = append(masks, batchMask{read: sys.read, write: sys.write})
		}
	}

	sched.fingerprint = fingerprintSystems(systems)
	return sched
}

func fingerprintSystems(systems []*systemEntry) uint64 {
	digest := xxhash.New()
	var buf [8]byte
	for _, sys := range systems {
		_, _ = digest.WriteString(sys.name)
		for _, word := range sys.read {
			binary.LittleEndian.PutUint64(buf[:], word)
			_, _ = digest.Write(buf[:])
		}
		for _, word := range sys.write {
			binary.LittleEndian.PutUint64(buf[:], word)
			_, _ = digest.Write(buf[:])
		}
	}
	return digest.Sum64()
}
