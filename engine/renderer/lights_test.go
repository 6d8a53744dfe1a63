package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

func pointLight(x float32) metadata.LightParameters {
	return metadata.LightParameters{
		Type:                metadata.LightPoint,
		Position:            math.Vec3{X: x},
		Diffuse:             math.Color4f{R: 1, G: 1, B: 1, A: 1},
		ConstantAttenuation: 1,
	}
}

func TestEnableLightDeduplicatesIdenticalDescriptors(t *testing.T) {
	ctx, _ := newTestContext(t)

	first := ctx.EnableLight(pointLight(1))
	second := ctx.EnableLight(pointLight(1))

	require.NotEqual(t, renderer.InvalidLightID, first)
	assert.Equal(t, first, second)
	assert.Equal(t, uint32(1), ctx.EnabledLightCount(), "the id must be in the active set exactly once")
}

func TestStructurallyDifferentLightsGetDistinctIDs(t *testing.T) {
	ctx, _ := newTestContext(t)

	a := ctx.EnableLight(pointLight(1))
	b := ctx.EnableLight(pointLight(2))

	assert.NotEqual(t, a, b)
	assert.Equal(t, uint32(2), ctx.EnabledLightCount())
}

func TestDisableLightRemovesBySwapWithLast(t *testing.T) {
	ctx, _ := newTestContext(t)

	a := ctx.EnableLight(pointLight(1))
	b := ctx.EnableLight(pointLight(2))
	c := ctx.EnableLight(pointLight(3))

	ctx.DisableLight(a)
	assert.Equal(t, uint32(2), ctx.EnabledLightCount())
	assert.False(t, ctx.LightEnabled(a))
	assert.True(t, ctx.LightEnabled(b))
	assert.True(t, ctx.LightEnabled(c))

	// Disabled ids stay registered and re-enable without a new id.
	assert.Equal(t, a, ctx.RegisterLight(pointLight(1)))
	ctx.EnableLightID(a)
	assert.True(t, ctx.LightEnabled(a))
}

func TestEnabledLightLimitIsEnforced(t *testing.T) {
	ctx, _ := newTestContext(t)

	for i := 0; i < metadata.MaxEnabledLights; i++ {
		require.NotEqual(t, renderer.InvalidLightID, ctx.EnableLight(pointLight(float32(i))))
	}
	assert.Equal(t, uint32(metadata.MaxEnabledLights), ctx.EnabledLightCount())

	// The ninth light registers fine but cannot join the active set.
	extra := ctx.EnableLight(pointLight(100))
	assert.NotEqual(t, renderer.InvalidLightID, extra)
	assert.False(t, ctx.LightEnabled(extra))
	assert.Equal(t, uint32(metadata.MaxEnabledLights), ctx.EnabledLightCount())
}

func TestLightRegistryPoolExhaustion(t *testing.T) {
	ctx, _ := newTestContext(t)

	first := ctx.RegisterLight(pointLight(0))
	for i := 1; i < 255; i++ {
		require.NotEqual(t, renderer.InvalidLightID, ctx.RegisterLight(pointLight(float32(i))))
	}

	overflow := ctx.RegisterLight(pointLight(1000))
	assert.Equal(t, renderer.InvalidLightID, overflow)

	// Earlier registrations are intact.
	assert.Equal(t, first, ctx.RegisterLight(pointLight(0)))
}

func TestUnregisterLightReturnsIDToPool(t *testing.T) {
	ctx, _ := newTestContext(t)

	a := ctx.EnableLight(pointLight(1))
	ctx.UnregisterLight(a)

	assert.False(t, ctx.LightEnabled(a))
	// The freed id is the lowest available again.
	assert.Equal(t, a, ctx.RegisterLight(pointLight(2)))
}

func TestSetLightUpdatesRegisteredDescriptor(t *testing.T) {
	ctx, _ := newTestContext(t)

	id := ctx.RegisterLight(pointLight(1))
	ctx.SetLight(id, pointLight(5))

	// The updated descriptor now maps to the same id.
	assert.Equal(t, id, ctx.RegisterLight(pointLight(5)))
}

func TestSetLightClaimsUnregisteredID(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.SetLight(5, pointLight(1))

	// Id 5 is taken out of the free pool before any registration.
	for i := 0; i < 10; i++ {
		id := ctx.RegisterLight(pointLight(float32(10 + i)))
		require.NotEqual(t, renderer.InvalidLightID, id)
		assert.NotEqual(t, uint8(5), id)
	}
	// The stored descriptor deduplicates like a registered one.
	assert.Equal(t, uint8(5), ctx.RegisterLight(pointLight(1)))

	rec, err := ctx.Cache().Parameter(renderer.ParameterLightData, 5)
	require.NoError(t, err)
	light := pointLight(1)
	assert.Equal(t, light.Bytes(), rec)
}

func TestSetLightRejectsInvalidID(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.SetLight(renderer.InvalidLightID, pointLight(1))

	assert.NotEqual(t, renderer.InvalidLightID, ctx.RegisterLight(pointLight(1)))
}
