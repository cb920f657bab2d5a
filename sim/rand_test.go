package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseDeterministic(t *testing.T) {
	a := noise(1, 7, 42, saltAccelX)
	b := noise(1, 7, 42, saltAccelX)
	assert.Equal(t, a, b)

	// Any input change produces a different stream.
	assert.NotEqual(t, a, noise(2, 7, 42, saltAccelX))
	assert.NotEqual(t, a, noise(1, 8, 42, saltAccelX))
	assert.NotEqual(t, a, noise(1, 7, 43, saltAccelX))
	assert.NotEqual(t, a, noise(1, 7, 42, saltAccelY))
}

func TestStep3(t *testing.T) {
	assert.Equal(t, 1, step3(0))
	assert.Equal(t, -1, step3(1))
	assert.Equal(t, 0, step3(2))
	assert.Equal(t, 0, step3(3))
	assert.Equal(t, 1, step3(4))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, -5, clamp(-9, -5, 5))
	assert.Equal(t, 5, clamp(12, -5, 5))
	assert.Equal(t, 3, clamp(3, -5, 5))
}
