package sim

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// noise derives a pseudo-random word from the simulation seed, the frame
// tick, and a slot. Hash-based randomness keeps parallel chunks free of any
// shared generator state, so frames stay deterministic for a given seed no
// matter how work is split across workers.
func noise(seed, tick uint64, slot int, salt uint64) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], seed)
	binary.LittleEndian.PutUint64(buf[8:], tick)
	binary.LittleEndian.PutUint64(buf[16:], uint64(slot))
	binary.LittleEndian.PutUint64(buf[24:], salt)
	return xxhash.Sum64(buf[:])
}

// step3 maps a random word onto {-1, 0, +1} with +1 and -1 each at
// probability 1/4.
func step3(r uint64) int {
	switch r % 4 {
	case 0:
		return 1
	case 1:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
