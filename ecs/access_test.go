package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessMask(t *testing.T) {
	var m accessMask
	assert.True(t, m.empty())

	for _, bit := range []ComponentID{0, 63, 64, 127, 200, 255} {
		m.set(bit)
		assert.True(t, m.has(bit))
	}
	assert.False(t, m.has(1))
	assert.False(t, m.has(128))
	assert.False(t, m.empty())

	var other accessMask
	other.set(3)
	assert.False(t, m.intersects(other))
	other.set(200)
	assert.True(t, m.intersects(other))
}

func TestAccessValidate(t *testing.T) {
	access := Access{Reads: []ComponentID{0, 1}, Writes: []ComponentID{2}}
	assert.NoError(t, access.validate("mover", 3))

	err := access.validate("mover", 2)
	assert.Equal(t, AccessError{System: "mover", Component: 2}, err)
}

func TestConflicts(t *testing.T) {
	entry := func(reads, writes []ComponentID) *systemEntry {
		a := Access{Reads: reads, Writes: writes}
		r, w := a.masks()
		return &systemEntry{access: a, read: r, write: w}
	}

	tests := []struct {
		name string
		a, b *systemEntry
		want bool
	}{
		{"read read", entry([]ComponentID{0}, nil), entry([]ComponentID{0}, nil), false},
		{"write read", entry(nil, []ComponentID{0}), entry([]ComponentID{0}, nil), true},
		{"read write", entry([]ComponentID{0}, nil), entry(nil, []ComponentID{0}), true},
		{"write write", entry(nil, []ComponentID{0}), entry(nil, []ComponentID{0}), true},
		{"disjoint", entry([]ComponentID{0}, []ComponentID{1}), entry([]ComponentID{2}, []ComponentID{3}), false},
		{"empty vs writer", entry(nil, nil), entry([]ComponentID{0}, []ComponentID{0}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, conflicts(tt.b, tt.a), "conflict relation is symmetric")
		})
	}
}

func TestChunkRange(t *testing.T) {
	t.Run("empty world yields one empty chunk", func(t *testing.T) {
		chunks := chunkRange(0, 4, 256)
		assert.Equal(t, []Range{{Start: 0, End: 0}}, chunks)
	})

	t.Run("small n collapses to a single chunk", func(t *testing.T) {
		chunks := chunkRange(100, 4, 256)
		assert.Equal(t, []Range{{Start: 0, End: 100}}, chunks)
	})

	t.Run("even split across workers", func(t *testing.T) {
		chunks := chunkRange(1000, 4, 100)
		assert.Equal(t, []Range{
			{Start: 0, End: 250},
			{Start: 250, End: 500},
			{Start: 500, End: 750},
			{Start: 750, End: 1000},
		}, chunks)
	})

	t.Run("chunks cover the range exactly once", func(t *testing.T) {
		for _, n := range []int{1, 255, 256, 257, 1023, 4096} {
			chunks := chunkRange(n, 5, 256)
			next := 0
			for _, c := range chunks {
				assert.Equal(t, next, c.Start)
				assert.Greater(t, c.End, c.Start)
				next = c.End
			}
			assert.Equal(t, n, next)
		}
	})
}
