package renderer_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
	"github.com/spaghettifunk/vetro/engine/renderer/record"
)

func newTestContext(t *testing.T) (*renderer.Context, *record.Backend) {
	t.Helper()
	backend := record.New()
	ctx, err := renderer.NewContext(backend, renderer.ContextConfig{
		ObjectDataCapacity:    4,
		ObjectDataBufferCount: 2,
		LightDataCapacity:     256,
	})
	require.NoError(t, err)
	backend.Reset()
	return ctx, backend
}

func opIndex(t *testing.T, ops []string, name string) int {
	t.Helper()
	for i, op := range ops {
		if op == name {
			return i
		}
	}
	t.Fatalf("command %q not found in %v", name, ops)
	return -1
}

func TestApplyChangesWithoutChangesIssuesNoCommands(t *testing.T) {
	ctx, backend := newTestContext(t)

	ctx.ApplyChanges(false)

	for _, op := range backend.Ops {
		assert.NotContains(t, []string{
			"SetBlendState", "SetColorMask", "SetCullFace", "SetDepthState",
			"SetStencilState", "SetPolygonMode", "SetPolygonOffset", "SetLineState",
			"SetViewport", "SetScissor", "BindFramebuffer", "BindShader",
			"BindTextures", "BindImage", "SetVertexFormats", "BindVertexBuffers",
			"BindIndexBuffer",
		}, op)
	}
}

func TestApplyChangesAppliesOnlyChangedCategories(t *testing.T) {
	ctx, backend := newTestContext(t)

	blend := metadata.NewBlendingParameters()
	blend.Enabled = true
	ctx.SetBlending(blend)
	ctx.ApplyChanges(false)

	assert.Equal(t, 1, backend.Count("SetBlendState"))
	assert.Equal(t, 0, backend.Count("SetDepthState"))

	backend.Reset()
	ctx.ApplyChanges(false)
	assert.Equal(t, 0, backend.Count("SetBlendState"))
}

func TestApplyChangesForcedReappliesEverything(t *testing.T) {
	ctx, backend := newTestContext(t)

	ctx.ApplyChanges(true)

	for _, op := range []string{
		"BindVertexBuffers", "BindIndexBuffer", "SetBlendState", "SetColorMask",
		"SetCullFace", "SetDepthState", "SetStencilState", "SetPolygonMode",
		"SetPolygonOffset", "SetLineState", "SetViewport", "SetScissor",
		"BindFramebuffer", "BindShader", "SetVertexFormats", "BindTextures",
	} {
		assert.Equal(t, 1, backend.Count(op), "expected exactly one %s", op)
	}
	assert.Equal(t, metadata.MaxImageUnits, backend.Count("BindImage"))
}

func TestApplyOrderBindsVertexFormatsAfterShader(t *testing.T) {
	ctx, backend := newTestContext(t)

	ctx.ApplyChanges(true)

	ops := backend.Ops
	buffers := opIndex(t, ops, "BindVertexBuffers")
	blend := opIndex(t, ops, "SetBlendState")
	viewport := opIndex(t, ops, "SetViewport")
	fbo := opIndex(t, ops, "BindFramebuffer")
	shader := opIndex(t, ops, "BindShader")
	formats := opIndex(t, ops, "SetVertexFormats")
	textures := opIndex(t, ops, "BindTextures")
	images := opIndex(t, ops, "BindImage")

	assert.Less(t, buffers, blend)
	assert.Less(t, blend, viewport)
	assert.Less(t, viewport, fbo)
	assert.Less(t, fbo, shader)
	assert.Less(t, shader, formats)
	assert.Less(t, formats, textures)
	assert.Less(t, textures, images)
}

func TestScopedStacksAreIsolatedPerCategory(t *testing.T) {
	ctx, _ := newTestContext(t)

	blend := metadata.NewBlendingParameters()
	blend.Enabled = true
	depth := metadata.DepthBufferParameters{}

	ctx.PushAndSetBlending(blend)
	ctx.PushAndSetDepthBuffer(depth)
	ctx.PopBlending()

	assert.Equal(t, metadata.NewBlendingParameters(), ctx.Blending())
	assert.Equal(t, depth, ctx.DepthBuffer(), "popping blending must not touch the depth category")

	ctx.PopDepthBuffer()
	assert.Equal(t, metadata.NewDepthBufferParameters(), ctx.DepthBuffer())
}

func TestPopOnEmptyStackIsReportedNoOp(t *testing.T) {
	ctx, _ := newTestContext(t)

	before := ctx.Blending()
	ctx.PopBlending()
	ctx.PopScissor()
	ctx.PopModelMatrix()
	ctx.PopTexture(0)

	assert.Equal(t, before, ctx.Blending())
}

func TestSetTextureOutOfRangeUnitIsIgnored(t *testing.T) {
	ctx, _ := newTestContext(t)

	tex := &record.Texture{TextureHandle: 7}
	ctx.SetTexture(metadata.MaxTextureUnits, tex)

	assert.Equal(t, 0, tex.PrepareCalls)
	assert.Nil(t, ctx.Texture(0))
}

func TestSetTexturePreparesForBinding(t *testing.T) {
	ctx, _ := newTestContext(t)

	tex := &record.Texture{TextureHandle: 7}
	ctx.SetTexture(2, tex)

	assert.Equal(t, 1, tex.PrepareCalls)
	assert.Equal(t, tex, ctx.Texture(2))
}

func TestApplyBindsInterfaceBlocksAndSyncsUniforms(t *testing.T) {
	ctx, backend := newTestContext(t)

	shader := &record.Shader{
		ProgramHandle: 3,
		Blocks: []renderer.InterfaceBlock{
			{Name: renderer.ParameterFrameData, Location: 0, Target: metadata.TargetUniformBuffer},
			{Name: renderer.ParameterObjectData, Location: 1, Target: metadata.TargetShaderStorageBuffer},
			{Name: "UnknownBlock", Location: 2, Target: metadata.TargetUniformBuffer},
		},
	}
	ctx.SetShader(shader)
	ctx.SetGlobalUniform("exposure", float32(1.5))
	ctx.ApplyChanges(false)

	assert.Equal(t, 2, backend.Count("BindBuffer"))
	assert.Equal(t, 1, shader.SyncCalls)
	assert.Equal(t, float32(1.5), shader.SyncedUniforms["exposure"])

	// Bindings are idempotent across applies.
	backend.Reset()
	ctx.ApplyChanges(false)
	assert.Equal(t, 0, backend.Count("BindBuffer"))

	backend.Reset()
	ctx.ApplyChanges(true)
	assert.Equal(t, 2, backend.Count("BindBuffer"))
}

func TestApplyChangesSwallowsNestedDeviceErrors(t *testing.T) {
	ctx, backend := newTestContext(t)
	backend.Fail = map[string]error{"BindShader": errors.New("device lost")}

	ctx.SetShader(&record.Shader{ProgramHandle: 1})
	ctx.ApplyChanges(false)

	// The failed bind is reported but the apply completes; a draw after
	// it still reaches the device.
	require.NoError(t, ctx.DrawArrays(metadata.PrimitiveTriangles, 0, 3))
	assert.Equal(t, 1, backend.Count("DrawArrays"))
}

func TestDrawAppendsObjectDataAndWrapsRing(t *testing.T) {
	ctx, backend := newTestContext(t)

	// Capacity is 4: filling past it must keep drawing without errors.
	for i := 0; i < 10; i++ {
		require.NoError(t, ctx.DrawArrays(metadata.PrimitiveTriangles, 0, 3))
	}
	assert.Equal(t, 10, backend.Count("DrawArrays"))
}

func TestDrawElementsValidatesIndexRange(t *testing.T) {
	ctx, backend := newTestContext(t)

	buf, err := backend.CreateBuffer(3*4, metadata.UsageStatic)
	require.NoError(t, err)
	ctx.BindIndexBuffer(buf)

	err = ctx.DrawElements(metadata.PrimitiveTriangles, metadata.IndexUint32, 0, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	assert.Equal(t, 0, backend.Count("DrawElements"))

	require.NoError(t, ctx.DrawElements(metadata.PrimitiveTriangles, metadata.IndexUint32, 0, 3))
	assert.Equal(t, 1, backend.Count("DrawElements"))
}

func TestDrawElementsRejectsWrappingIndexRange(t *testing.T) {
	ctx, backend := newTestContext(t)

	buf, err := backend.CreateBuffer(16*4, metadata.UsageStatic)
	require.NoError(t, err)
	ctx.BindIndexBuffer(buf)

	// first+count wraps around uint32; the range must still be
	// rejected instead of slipping under the buffer size.
	err = ctx.DrawElements(metadata.PrimitiveTriangles, metadata.IndexUint32, ^uint32(0), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	assert.Equal(t, 0, backend.Count("DrawElements"))
}

// textureSetFlag reads the per-unit populated flag out of the
// texture-set record.
func textureSetFlag(t *testing.T, ctx *renderer.Context, unit uint32) uint32 {
	t.Helper()
	rec, err := ctx.Cache().Parameter(renderer.ParameterTextureSetData, 0)
	require.NoError(t, err)
	return binary.LittleEndian.Uint32(rec[unit*4 : unit*4+4])
}

func TestTextureSetRecordTracksBoundUnits(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := &record.Texture{TextureHandle: 7}

	ctx.SetTexture(2, tex)
	ctx.ApplyChanges(false)
	assert.Equal(t, uint32(1), textureSetFlag(t, ctx, 2))
	assert.Equal(t, uint32(0), textureSetFlag(t, ctx, 0))

	ctx.SetTexture(2, nil)
	ctx.ApplyChanges(false)
	assert.Equal(t, uint32(0), textureSetFlag(t, ctx, 2))
}

func TestPopTextureRestoresTextureSetRecord(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := &record.Texture{TextureHandle: 7}

	ctx.PushAndSetTexture(1, tex)
	ctx.ApplyChanges(false)
	assert.Equal(t, uint32(1), textureSetFlag(t, ctx, 1))

	ctx.PopTexture(1)
	ctx.ApplyChanges(false)
	assert.Equal(t, uint32(0), textureSetFlag(t, ctx, 1))
}

func TestDispatchComputeWithoutShaderIsNoOp(t *testing.T) {
	ctx, backend := newTestContext(t)

	require.NoError(t, ctx.DispatchCompute(8, 8, 1))
	assert.Equal(t, 0, backend.Count("DispatchCompute"))

	ctx.SetShader(&record.Shader{ProgramHandle: 1})
	require.NoError(t, ctx.DispatchCompute(8, 8, 1))
	assert.Equal(t, 1, backend.Count("DispatchCompute"))
}

func TestClearScreenRectRestoresScissor(t *testing.T) {
	ctx, backend := newTestContext(t)

	rect := math.Rect2i{X: 10, Y: 10, Width: 64, Height: 64}
	ctx.ClearScreenRect(rect, math.Color4f{R: 1, A: 1}, true)

	scissor := opIndex(t, backend.Ops, "SetScissor")
	clear := opIndex(t, backend.Ops, "Clear")
	assert.Less(t, scissor, clear)
	assert.False(t, ctx.Scissor().Enabled, "scissor must be restored after the scoped clear")
}

func TestViewportIsMirroredIntoFrameData(t *testing.T) {
	ctx, backend := newTestContext(t)

	ctx.PushAndSetViewport(math.Rect2i{Width: 800, Height: 600})
	ctx.ApplyChanges(false)
	assert.Equal(t, 1, backend.Count("SetViewport"))

	ctx.PopViewport()
	backend.Reset()
	ctx.ApplyChanges(false)
	assert.Equal(t, 1, backend.Count("SetViewport"))
}

func TestSetVertexLayoutResolvesShaderLocations(t *testing.T) {
	ctx, backend := newTestContext(t)

	layout := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: metadata.AttributePosition, NumValues: 3, Type: metadata.TypeFloat32},
		metadata.VertexAttribute{Name: metadata.AttributeNormal, NumValues: 3, Type: metadata.TypeFloat32},
	)
	shader := &record.Shader{
		ProgramHandle: 1,
		AttributeLocations: map[string]int32{
			metadata.AttributePosition: 4,
			// the normal attribute is not consumed
		},
	}
	ctx.SetShader(shader)
	require.NoError(t, ctx.SetVertexLayout(layout, 0))
	ctx.ApplyChanges(false)
	assert.Equal(t, 1, backend.Count("SetVertexFormats"))

	err := ctx.SetVertexLayout(layout, metadata.MaxVertexBindings)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestMaterialScopes(t *testing.T) {
	ctx, _ := newTestContext(t)

	assert.False(t, ctx.Material().Enabled)

	params := metadata.MaterialParameters{Shininess: 32}
	ctx.PushAndSetMaterial(params)
	assert.True(t, ctx.Material().Enabled)
	assert.Equal(t, params, ctx.Material().Mat)

	ctx.PopMaterial()
	assert.False(t, ctx.Material().Enabled)
}
