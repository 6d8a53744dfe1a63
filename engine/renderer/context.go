package renderer

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Names of the parameter-cache slots the context declares at
// construction. Shader interface blocks with these names are bound to
// the corresponding slot automatically during ApplyChanges.
const (
	ParameterFrameData      = "FrameData"
	ParameterObjectData     = "ObjectData"
	ParameterMaterialData   = "MaterialData"
	ParameterLightData      = "LightData"
	ParameterLightSetData   = "LightSetData"
	ParameterTextureSetData = "TextureSetData"
)

// ContextConfig sizes the context's parameter-cache slots.
type ContextConfig struct {
	// ObjectDataCapacity is the number of per-draw records per stream
	// buffer.
	ObjectDataCapacity uint32
	// ObjectDataBufferCount is the ring depth of the per-draw slot.
	ObjectDataBufferCount uint32
	// LightDataCapacity is the size of the hardware light table.
	LightDataCapacity uint32
}

// NewContextConfig returns the documented defaults.
func NewContextConfig() ContextConfig {
	return ContextConfig{
		ObjectDataCapacity:    512,
		ObjectDataBufferCount: 2,
		LightDataCapacity:     256,
	}
}

// stack is a save/restore stack for one state category. Each category
// has its own; no category participates in another's transitions.
type stack[T any] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Context tracks the state of a single logical graphics device and
// issues the minimal set of device commands to realize it. Application
// code mutates the target snapshot through the scoped setters; nothing
// reaches the device until ApplyChanges runs, which every draw,
// dispatch and flush does as its first step.
//
// A Context must only be used from the thread that owns the device
// command stream.
type Context struct {
	backend Backend
	config  ContextConfig
	cache   *ParameterCache

	target Snapshot
	active Snapshot

	blendingStack      stack[metadata.BlendingParameters]
	colorBufferStack   stack[metadata.ColorBufferParameters]
	cullFaceStack      stack[metadata.CullFaceParameters]
	depthBufferStack   stack[metadata.DepthBufferParameters]
	lineStack          stack[metadata.LineParameters]
	polygonModeStack   stack[metadata.PolygonModeParameters]
	polygonOffsetStack stack[metadata.PolygonOffsetParameters]
	scissorStack       stack[metadata.ScissorParameters]
	stencilStack       stack[metadata.StencilParameters]
	fboStack           stack[Framebuffer]
	shaderStack        stack[Shader]
	textureStacks      [metadata.MaxTextureUnits]stack[Texture]
	imageStacks        [metadata.MaxImageUnits]stack[ImageBindParameters]

	globalUniforms map[string]interface{}

	// per frame data
	projectionStack stack[math.Mat4]
	viewportStack   stack[math.Rect2i]
	activeFrameData metadata.FrameData

	// per object data
	matrixStack      stack[math.Mat4]
	pointStack       stack[float32]
	activeObjectData metadata.ObjectData

	// materials
	materialStack  stack[metadata.MaterialData]
	activeMaterial metadata.MaterialData

	// lights
	lightRegistry  map[metadata.LightParameters]uint8
	freeLightIDs   *core.IDPool
	activeLightSet metadata.LightSet

	// textures
	enabledTextures metadata.TextureSet

	windowClientArea math.Rect2i
}

// NewContext creates a context over the given backend with the
// documented state defaults and declares the default parameter-cache
// slots.
func NewContext(backend Backend, cfg ContextConfig) (*Context, error) {
	if cfg.ObjectDataCapacity == 0 {
		cfg = NewContextConfig()
	}
	c := &Context{
		backend:          backend,
		config:           cfg,
		cache:            NewParameterCache(backend),
		target:           newSnapshot(),
		active:           newSnapshot(),
		globalUniforms:   make(map[string]interface{}),
		activeObjectData: metadata.NewObjectData(),
		lightRegistry:    make(map[metadata.LightParameters]uint8),
		freeLightIDs:     core.NewIDPool(int(InvalidLightID)),
	}
	c.activeFrameData.ViewMatrix = math.NewMat4Identity()
	c.activeFrameData.InverseViewMatrix = math.NewMat4Identity()
	c.activeFrameData.ProjectionMatrix = math.NewMat4Identity()
	c.activeFrameData.InverseProjectionMatrix = math.NewMat4Identity()

	// The active snapshot starts equal to the target; the first apply
	// only touches what callers changed since construction.
	type slotDecl struct {
		name        string
		elementSize uint32
		capacity    uint32
		usage       metadata.BufferUsage
		bufferCount uint32
	}
	decls := []slotDecl{
		{ParameterFrameData, metadata.FrameDataSize, 1, metadata.UsageDynamic, 1},
		{ParameterObjectData, metadata.ObjectDataSize, cfg.ObjectDataCapacity, metadata.UsageStream, cfg.ObjectDataBufferCount},
		{ParameterMaterialData, metadata.MaterialDataSize, 1, metadata.UsageDynamic, 1},
		{ParameterLightData, metadata.LightDataSize, cfg.LightDataCapacity, metadata.UsageDynamic, 1},
		{ParameterLightSetData, metadata.LightSetDataSize, 1, metadata.UsageDynamic, 1},
		{ParameterTextureSetData, metadata.TextureSetDataSize, 1, metadata.UsageDynamic, 1},
	}
	for _, d := range decls {
		if err := c.cache.CreateCache(d.name, d.elementSize, d.capacity, d.usage, d.bufferCount); err != nil {
			return nil, fmt.Errorf("context: %w", err)
		}
	}
	return c, nil
}

// Backend returns the device collaborator the context drives.
func (c *Context) Backend() Backend {
	return c.backend
}

// Cache returns the context's parameter cache.
func (c *Context) Cache() *ParameterCache {
	return c.cache
}

// ApplyChanges diffs the target snapshot against the last-applied
// active snapshot and issues the minimal ordered set of device
// commands, then refreshes the frame/material/light-set/texture-set
// cache records, binds matching shader interface blocks and flushes
// pending global uniforms. With forced set every category is re-applied
// regardless of equality.
//
// Errors from nested device operations are downgraded to warnings:
// device state may be left partially updated, which is accepted as a
// degraded-but-continuing mode for this layer.
func (c *Context) ApplyChanges(forced bool) {
	diff := makeDiff(&c.active, &c.target, forced)
	c.active = c.target
	if err := applyDiff(c.backend, &c.active, diff); err != nil {
		core.LogWarn("problem detected while applying state changes: %v", err)
	}

	if err := c.cache.SetParameter(ParameterFrameData, 0, c.activeFrameData.Bytes()); err != nil {
		core.LogWarn("apply: frame data: %v", err)
	}
	if err := c.cache.SetParameter(ParameterMaterialData, 0, c.activeMaterial.Bytes()); err != nil {
		core.LogWarn("apply: material data: %v", err)
	}
	if err := c.cache.SetParameter(ParameterLightSetData, 0, c.activeLightSet.Bytes()); err != nil {
		core.LogWarn("apply: light set data: %v", err)
	}
	if err := c.cache.SetParameter(ParameterTextureSetData, 0, c.enabledTextures.Bytes()); err != nil {
		core.LogWarn("apply: texture set data: %v", err)
	}

	shader := c.active.shader
	if shader == nil {
		return
	}
	for _, block := range shader.InterfaceBlocks() {
		if block.Location >= 0 && c.cache.IsCache(block.Name) {
			if err := c.cache.Bind(block.Name, uint32(block.Location), block.Target, forced); err != nil {
				core.LogWarn("apply: binding block '%s': %v", block.Name, err)
			}
		}
	}
	if err := shader.SyncUniforms(c.globalUniforms, forced); err != nil {
		core.LogWarn("apply: uniform sync: %v", err)
	}
}

// SetGlobalUniform buffers a uniform value to be synchronized to the
// bound shader on the next apply.
func (c *Context) SetGlobalUniform(name string, value interface{}) {
	c.globalUniforms[name] = value
}

// GlobalUniform returns the buffered value, if any.
func (c *Context) GlobalUniform(name string) (interface{}, bool) {
	v, ok := c.globalUniforms[name]
	return v, ok
}

// nextDrawID appends the current per-draw record to the streamed
// ObjectData slot and returns its index. On overflow the record lands
// at index 0 of the next ring buffer.
func (c *Context) nextDrawID() uint32 {
	drawID := c.cache.AddParameter(ParameterObjectData, c.activeObjectData.Bytes())
	if drawID == InvalidIndex {
		// Callers that outrun the ring without a swap overwrite from the
		// start; deterministic, but their responsibility to avoid.
		c.cache.Swap(ParameterObjectData)
		drawID = c.cache.AddParameter(ParameterObjectData, c.activeObjectData.Bytes())
		if drawID == InvalidIndex {
			drawID = 0
		}
	}
	return drawID
}

// swapObjectDataIfFull advances the per-draw ring once the cursor
// reached the end, so the next draw starts on a fresh buffer.
func (c *Context) swapObjectDataIfFull(drawID uint32) {
	if drawID >= c.config.ObjectDataCapacity-1 {
		c.cache.Swap(ParameterObjectData)
	}
}

// DrawArrays applies pending state changes and draws count vertices
// starting at first.
func (c *Context) DrawArrays(mode metadata.PrimitiveMode, first, count uint32) error {
	c.ApplyChanges(false)
	drawID := c.nextDrawID()
	err := c.backend.DrawArrays(mode, first, count, drawID)
	c.swapObjectDataIfFull(drawID)
	return err
}

// DrawElements applies pending state changes and draws count indices
// starting at first, read from the bound index buffer. The range is
// validated against the buffer's size: exceeding it is a programmer
// error and fails hard.
func (c *Context) DrawElements(mode metadata.PrimitiveMode, indexType metadata.IndexType, first, count uint32) error {
	if buf := c.target.elementBuffer; buf != nil && buf.IsValid() {
		end := (uint64(first) + uint64(count)) * uint64(indexType.Size())
		if end > uint64(buf.Size()) {
			return fmt.Errorf("draw range [%d,%d) exceeds index buffer bounds: %w", first, uint64(first)+uint64(count), core.ErrOutOfRange)
		}
	}
	c.ApplyChanges(false)
	drawID := c.nextDrawID()
	err := c.backend.DrawElements(mode, indexType, first, count, drawID)
	c.swapObjectDataIfFull(drawID)
	return err
}

// DispatchCompute applies pending state changes and dispatches a
// compute grid. Without an active shader the call is reported and
// becomes a no-op.
func (c *Context) DispatchCompute(groupsX, groupsY, groupsZ uint32) error {
	if c.ActiveShader() == nil {
		core.LogWarn("DispatchCompute: there is no active compute shader")
		return nil
	}
	c.ApplyChanges(false)
	return c.backend.DispatchCompute(groupsX, groupsY, groupsZ)
}

// ClearScreen clears color and depth of the current render target.
func (c *Context) ClearScreen(color math.Color4f) {
	c.ApplyChanges(false)
	c.backend.Clear(ClearColorBuffer|ClearDepthBuffer, color, 1, 0)
}

// ClearScreenRect clears the given rectangle using a scoped scissor.
func (c *Context) ClearScreenRect(rect math.Rect2i, color math.Color4f, clearDepth bool) {
	c.PushAndSetScissor(metadata.NewScissorParameters(rect))
	c.ApplyChanges(false)
	flags := ClearColorBuffer
	if clearDepth {
		flags |= ClearDepthBuffer
	}
	c.backend.Clear(flags, color, 1, 0)
	c.PopScissor()
}

// ClearColor clears only the color buffer.
func (c *Context) ClearColor(color math.Color4f) {
	c.ApplyChanges(false)
	c.backend.Clear(ClearColorBuffer, color, 1, 0)
}

// ClearDepth clears only the depth buffer to the given value.
func (c *Context) ClearDepth(value float32) {
	c.ApplyChanges(false)
	c.backend.Clear(ClearDepthBuffer, math.Color4f{}, value, 0)
}

// ClearStencil clears only the stencil buffer to the given value.
func (c *Context) ClearStencil(value int32) {
	c.ApplyChanges(false)
	c.backend.Clear(ClearStencilBuffer, math.Color4f{}, 1, value)
}

// Barrier applies pending changes and inserts a device memory barrier.
func (c *Context) Barrier() {
	c.ApplyChanges(false)
	c.backend.Barrier()
}

// Flush applies pending changes and flushes the device command stream.
func (c *Context) Flush() {
	c.ApplyChanges(false)
	c.backend.Flush()
}

// Finish applies pending changes and blocks until the device is idle.
func (c *Context) Finish() {
	c.ApplyChanges(false)
	c.backend.Finish()
}

// WindowClientArea returns the window rectangle last reported to the
// context.
func (c *Context) WindowClientArea() math.Rect2i {
	return c.windowClientArea
}

// SetWindowClientArea records the window rectangle; it does not touch
// the viewport.
func (c *Context) SetWindowClientArea(area math.Rect2i) {
	c.windowClientArea = area
}
