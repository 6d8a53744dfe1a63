package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
	"github.com/spaghettifunk/vetro/engine/renderer/record"
)

func newTestCache(t *testing.T) (*renderer.ParameterCache, *record.Backend) {
	t.Helper()
	backend := record.New()
	return renderer.NewParameterCache(backend), backend
}

func record16(b byte) []byte {
	out := make([]byte, 16)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestCreateCacheRedeclareIsIgnored(t *testing.T) {
	cache, backend := newTestCache(t)

	require.NoError(t, cache.CreateCache("Slot", 16, 4, metadata.UsageDynamic, 1))
	assert.Equal(t, 1, backend.Count("CreateBuffer"))

	// Conflicting redeclare warns but keeps the original slot.
	require.NoError(t, cache.CreateCache("Slot", 32, 8, metadata.UsageDynamic, 1))
	assert.Equal(t, 1, backend.Count("CreateBuffer"))
	assert.Equal(t, uint32(4), cache.Capacity("Slot"))
}

func TestAddParameterStopsAtCapacity(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 3, metadata.UsageStream, 1))

	assert.Equal(t, uint32(0), cache.AddParameter("Slot", record16(0)))
	assert.Equal(t, uint32(1), cache.AddParameter("Slot", record16(1)))
	assert.Equal(t, uint32(2), cache.AddParameter("Slot", record16(2)))
	assert.Equal(t, renderer.InvalidIndex, cache.AddParameter("Slot", record16(3)))

	// Only an explicit swap resets the cursor, deterministically at 0.
	cache.Swap("Slot")
	assert.Equal(t, uint32(0), cache.AddParameter("Slot", record16(4)))
}

func TestSwapAdvancesRingBuffer(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageStream, 2))

	cache.AddParameter("Slot", record16(0xaa))
	cache.Swap("Slot")
	cache.AddParameter("Slot", record16(0xbb))
	cache.Swap("Slot")

	// After two swaps the ring is back on the first buffer, whose
	// content from the first write is still intact.
	require.NoError(t, cache.SetParameter("Slot", 1, record16(0xcc)))
}

func TestSetParameterOutOfRangeIsIgnored(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageDynamic, 1))

	assert.NoError(t, cache.SetParameter("Slot", 5, record16(1)))
	assert.Error(t, cache.SetParameter("Missing", 0, record16(1)))
}

func TestBindIsIdempotentUnlessForced(t *testing.T) {
	cache, backend := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageDynamic, 1))

	require.NoError(t, cache.Bind("Slot", 0, metadata.TargetUniformBuffer, false))
	require.NoError(t, cache.Bind("Slot", 0, metadata.TargetUniformBuffer, false))
	assert.Equal(t, 1, backend.Count("BindBuffer"))

	require.NoError(t, cache.Bind("Slot", 0, metadata.TargetUniformBuffer, true))
	assert.Equal(t, 2, backend.Count("BindBuffer"))

	// A different location is a different binding.
	require.NoError(t, cache.Bind("Slot", 1, metadata.TargetUniformBuffer, false))
	assert.Equal(t, 3, backend.Count("BindBuffer"))
}

func TestSwapInvalidatesBinding(t *testing.T) {
	cache, backend := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageStream, 2))

	require.NoError(t, cache.Bind("Slot", 0, metadata.TargetShaderStorageBuffer, false))
	cache.Swap("Slot")
	require.NoError(t, cache.Bind("Slot", 0, metadata.TargetShaderStorageBuffer, false))
	assert.Equal(t, 2, backend.Count("BindBuffer"))
}

func TestResizeCacheResetsCursor(t *testing.T) {
	cache, _ := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageDynamic, 1))

	cache.AddParameter("Slot", record16(1))
	cache.AddParameter("Slot", record16(2))
	require.NoError(t, cache.ResizeCache("Slot", 8))

	assert.Equal(t, uint32(8), cache.Capacity("Slot"))
	assert.Equal(t, uint32(0), cache.AddParameter("Slot", record16(3)))
}

func TestDeleteCacheDestroysBuffers(t *testing.T) {
	cache, backend := newTestCache(t)
	require.NoError(t, cache.CreateCache("Slot", 16, 2, metadata.UsageDynamic, 2))

	cache.DeleteCache("Slot")
	assert.Equal(t, 2, backend.Count("DestroyBuffer"))
	assert.False(t, cache.IsCache("Slot"))
}
