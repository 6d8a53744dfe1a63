package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPoolHandsOutLowestFreeID(t *testing.T) {
	p := NewIDPool(3)

	assert.Equal(t, 0, p.Acquire())
	assert.Equal(t, 1, p.Acquire())
	assert.Equal(t, 2, p.Acquire())
	assert.Equal(t, -1, p.Acquire())

	p.Release(1)
	assert.True(t, p.Free(1))
	assert.Equal(t, 1, p.Acquire())
	assert.Equal(t, -1, p.Acquire())
}

func TestIDPoolClaimAndRangeChecks(t *testing.T) {
	p := NewIDPool(2)
	p.Claim(0)
	assert.Equal(t, 1, p.Acquire())

	// Out-of-range ids are ignored.
	p.Claim(99)
	p.Release(-1)
	assert.Equal(t, 2, p.Size())
}
