package renderer

import (
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// The scoped setters below follow one shape per category: a getter over
// the target snapshot, Set, Push (save the current value), PushAndSet,
// and Pop (restore the saved value). Stacks are strictly per category;
// popping an empty stack is reported and ignored so unbalanced callers
// degrade instead of crashing.

// Blending

func (c *Context) Blending() metadata.BlendingParameters {
	return c.target.blending
}

func (c *Context) SetBlending(p metadata.BlendingParameters) {
	c.target.blending = p
}

func (c *Context) PushBlending() {
	c.blendingStack.push(c.target.blending)
}

func (c *Context) PushAndSetBlending(p metadata.BlendingParameters) {
	c.PushBlending()
	c.SetBlending(p)
}

func (c *Context) PopBlending() {
	p, ok := c.blendingStack.pop()
	if !ok {
		core.LogWarn("PopBlending: no blending parameters to restore")
		return
	}
	c.target.blending = p
}

// Color buffer

func (c *Context) ColorBuffer() metadata.ColorBufferParameters {
	return c.target.colorBuffer
}

func (c *Context) SetColorBuffer(p metadata.ColorBufferParameters) {
	c.target.colorBuffer = p
}

func (c *Context) PushColorBuffer() {
	c.colorBufferStack.push(c.target.colorBuffer)
}

func (c *Context) PushAndSetColorBuffer(p metadata.ColorBufferParameters) {
	c.PushColorBuffer()
	c.SetColorBuffer(p)
}

func (c *Context) PopColorBuffer() {
	p, ok := c.colorBufferStack.pop()
	if !ok {
		core.LogWarn("PopColorBuffer: no color buffer parameters to restore")
		return
	}
	c.target.colorBuffer = p
}

// Cull face

func (c *Context) CullFace() metadata.CullFaceParameters {
	return c.target.cullFace
}

func (c *Context) SetCullFace(p metadata.CullFaceParameters) {
	c.target.cullFace = p
}

func (c *Context) PushCullFace() {
	c.cullFaceStack.push(c.target.cullFace)
}

func (c *Context) PushAndSetCullFace(p metadata.CullFaceParameters) {
	c.PushCullFace()
	c.SetCullFace(p)
}

func (c *Context) PopCullFace() {
	p, ok := c.cullFaceStack.pop()
	if !ok {
		core.LogWarn("PopCullFace: no cull face parameters to restore")
		return
	}
	c.target.cullFace = p
}

// Depth buffer

func (c *Context) DepthBuffer() metadata.DepthBufferParameters {
	return c.target.depthBuffer
}

func (c *Context) SetDepthBuffer(p metadata.DepthBufferParameters) {
	c.target.depthBuffer = p
}

func (c *Context) PushDepthBuffer() {
	c.depthBufferStack.push(c.target.depthBuffer)
}

func (c *Context) PushAndSetDepthBuffer(p metadata.DepthBufferParameters) {
	c.PushDepthBuffer()
	c.SetDepthBuffer(p)
}

func (c *Context) PopDepthBuffer() {
	p, ok := c.depthBufferStack.pop()
	if !ok {
		core.LogWarn("PopDepthBuffer: no depth buffer parameters to restore")
		return
	}
	c.target.depthBuffer = p
}

// Stencil

func (c *Context) Stencil() metadata.StencilParameters {
	return c.target.stencil
}

func (c *Context) SetStencil(p metadata.StencilParameters) {
	c.target.stencil = p
}

func (c *Context) PushStencil() {
	c.stencilStack.push(c.target.stencil)
}

func (c *Context) PushAndSetStencil(p metadata.StencilParameters) {
	c.PushStencil()
	c.SetStencil(p)
}

func (c *Context) PopStencil() {
	p, ok := c.stencilStack.pop()
	if !ok {
		core.LogWarn("PopStencil: no stencil parameters to restore")
		return
	}
	c.target.stencil = p
}

// Line

func (c *Context) Line() metadata.LineParameters {
	return c.target.line
}

func (c *Context) SetLine(p metadata.LineParameters) {
	c.target.line = p
}

func (c *Context) PushLine() {
	c.lineStack.push(c.target.line)
}

func (c *Context) PushAndSetLine(p metadata.LineParameters) {
	c.PushLine()
	c.SetLine(p)
}

func (c *Context) PopLine() {
	p, ok := c.lineStack.pop()
	if !ok {
		core.LogWarn("PopLine: no line parameters to restore")
		return
	}
	c.target.line = p
}

// Polygon mode

func (c *Context) PolygonMode() metadata.PolygonModeParameters {
	return c.target.polygonMode
}

func (c *Context) SetPolygonMode(p metadata.PolygonModeParameters) {
	c.target.polygonMode = p
}

func (c *Context) PushPolygonMode() {
	c.polygonModeStack.push(c.target.polygonMode)
}

func (c *Context) PushAndSetPolygonMode(p metadata.PolygonModeParameters) {
	c.PushPolygonMode()
	c.SetPolygonMode(p)
}

func (c *Context) PopPolygonMode() {
	p, ok := c.polygonModeStack.pop()
	if !ok {
		core.LogWarn("PopPolygonMode: no polygon mode parameters to restore")
		return
	}
	c.target.polygonMode = p
}

// Polygon offset

func (c *Context) PolygonOffset() metadata.PolygonOffsetParameters {
	return c.target.polygonOffset
}

func (c *Context) SetPolygonOffset(p metadata.PolygonOffsetParameters) {
	c.target.polygonOffset = p
}

func (c *Context) PushPolygonOffset() {
	c.polygonOffsetStack.push(c.target.polygonOffset)
}

func (c *Context) PushAndSetPolygonOffset(p metadata.PolygonOffsetParameters) {
	c.PushPolygonOffset()
	c.SetPolygonOffset(p)
}

func (c *Context) PopPolygonOffset() {
	p, ok := c.polygonOffsetStack.pop()
	if !ok {
		core.LogWarn("PopPolygonOffset: no polygon offset parameters to restore")
		return
	}
	c.target.polygonOffset = p
}

// Scissor

func (c *Context) Scissor() metadata.ScissorParameters {
	return c.target.scissor
}

func (c *Context) SetScissor(p metadata.ScissorParameters) {
	c.target.scissor = p
}

func (c *Context) PushScissor() {
	c.scissorStack.push(c.target.scissor)
}

func (c *Context) PushAndSetScissor(p metadata.ScissorParameters) {
	c.PushScissor()
	c.SetScissor(p)
}

func (c *Context) PopScissor() {
	p, ok := c.scissorStack.pop()
	if !ok {
		core.LogWarn("PopScissor: no scissor parameters to restore")
		return
	}
	c.target.scissor = p
}

// Viewport. The viewport is mirrored into the per-frame record so
// shaders can read it.

func (c *Context) Viewport() math.Rect2i {
	return c.target.viewport
}

func (c *Context) SetViewport(rect math.Rect2i) {
	c.target.viewport = rect
	c.activeFrameData.Viewport = math.Vec4{
		X: float32(rect.X),
		Y: float32(rect.Y),
		Z: float32(rect.Width),
		W: float32(rect.Height),
	}
}

func (c *Context) PushViewport() {
	c.viewportStack.push(c.target.viewport)
}

func (c *Context) PushAndSetViewport(rect math.Rect2i) {
	c.PushViewport()
	c.SetViewport(rect)
}

func (c *Context) PopViewport() {
	rect, ok := c.viewportStack.pop()
	if !ok {
		core.LogWarn("PopViewport: no viewport to restore")
		return
	}
	c.SetViewport(rect)
}

// Framebuffer

func (c *Context) ActiveFramebuffer() Framebuffer {
	return c.target.framebuffer
}

func (c *Context) SetFramebuffer(fbo Framebuffer) {
	c.target.framebuffer = fbo
}

func (c *Context) PushFramebuffer() {
	c.fboStack.push(c.target.framebuffer)
}

func (c *Context) PushAndSetFramebuffer(fbo Framebuffer) {
	c.PushFramebuffer()
	c.SetFramebuffer(fbo)
}

func (c *Context) PopFramebuffer() {
	fbo, ok := c.fboStack.pop()
	if !ok {
		core.LogWarn("PopFramebuffer: no framebuffer to restore")
		return
	}
	c.target.framebuffer = fbo
}

// Shader

func (c *Context) ActiveShader() Shader {
	return c.target.shader
}

func (c *Context) SetShader(shader Shader) {
	c.target.shader = shader
}

func (c *Context) PushShader() {
	c.shaderStack.push(c.target.shader)
}

func (c *Context) PushAndSetShader(shader Shader) {
	c.PushShader()
	c.SetShader(shader)
}

func (c *Context) PopShader() {
	shader, ok := c.shaderStack.pop()
	if !ok {
		core.LogWarn("PopShader: no shader to restore")
		return
	}
	c.target.shader = shader
}

// Textures. Each unit has its own stack. Setting a texture gives it a
// chance to finalize device resources before the next apply.

func (c *Context) Texture(unit uint32) Texture {
	if unit >= metadata.MaxTextureUnits {
		core.LogWarn("Texture: unit %d out of range", unit)
		return nil
	}
	return c.target.textures[unit]
}

func (c *Context) SetTexture(unit uint32, texture Texture) {
	if unit >= metadata.MaxTextureUnits {
		core.LogWarn("SetTexture: unit %d out of range", unit)
		return
	}
	if texture != nil {
		if _, err := texture.PrepareForBinding(c); err != nil {
			core.LogWarn("SetTexture: preparing texture for unit %d: %v", unit, err)
			texture = nil
		}
	}
	c.target.textures[unit] = texture
	c.markTextureUnit(unit, texture)
}

// markTextureUnit keeps the texture-set record in step with the target
// snapshot, so shaders see which units hold a texture.
func (c *Context) markTextureUnit(unit uint32, texture Texture) {
	if texture != nil {
		c.enabledTextures[unit] = 1
	} else {
		c.enabledTextures[unit] = 0
	}
}

func (c *Context) PushTexture(unit uint32) {
	if unit >= metadata.MaxTextureUnits {
		core.LogWarn("PushTexture: unit %d out of range", unit)
		return
	}
	c.textureStacks[unit].push(c.target.textures[unit])
}

func (c *Context) PushAndSetTexture(unit uint32, texture Texture) {
	c.PushTexture(unit)
	c.SetTexture(unit, texture)
}

func (c *Context) PopTexture(unit uint32) {
	if unit >= metadata.MaxTextureUnits {
		core.LogWarn("PopTexture: unit %d out of range", unit)
		return
	}
	texture, ok := c.textureStacks[unit].pop()
	if !ok {
		core.LogWarn("PopTexture: no texture to restore for unit %d", unit)
		return
	}
	c.target.textures[unit] = texture
	c.markTextureUnit(unit, texture)
}

// Images

func (c *Context) BoundImage(unit uint32) ImageBindParameters {
	if unit >= metadata.MaxImageUnits {
		core.LogWarn("BoundImage: unit %d out of range", unit)
		return ImageBindParameters{}
	}
	return c.target.images[unit]
}

func (c *Context) SetBoundImage(unit uint32, img ImageBindParameters) {
	if unit >= metadata.MaxImageUnits {
		core.LogWarn("SetBoundImage: unit %d out of range", unit)
		return
	}
	c.target.images[unit] = img
}

func (c *Context) PushBoundImage(unit uint32) {
	if unit >= metadata.MaxImageUnits {
		core.LogWarn("PushBoundImage: unit %d out of range", unit)
		return
	}
	c.imageStacks[unit].push(c.target.images[unit])
}

func (c *Context) PushAndSetBoundImage(unit uint32, img ImageBindParameters) {
	c.PushBoundImage(unit)
	c.SetBoundImage(unit, img)
}

func (c *Context) PopBoundImage(unit uint32) {
	if unit >= metadata.MaxImageUnits {
		core.LogWarn("PopBoundImage: unit %d out of range", unit)
		return
	}
	img, ok := c.imageStacks[unit].pop()
	if !ok {
		core.LogWarn("PopBoundImage: no image binding to restore for unit %d", unit)
		return
	}
	c.target.images[unit] = img
}

// Model matrix

func (c *Context) ModelMatrix() math.Mat4 {
	return c.activeObjectData.ModelMatrix
}

func (c *Context) SetModelMatrix(m math.Mat4) {
	c.activeObjectData.ModelMatrix = m
}

// MultiplyModelMatrix post-multiplies m onto the current model matrix.
func (c *Context) MultiplyModelMatrix(m math.Mat4) {
	c.activeObjectData.ModelMatrix = c.activeObjectData.ModelMatrix.Mul(m)
}

func (c *Context) ResetModelMatrix() {
	c.activeObjectData.ModelMatrix = math.NewMat4Identity()
}

func (c *Context) PushModelMatrix() {
	c.matrixStack.push(c.activeObjectData.ModelMatrix)
}

func (c *Context) PushAndSetModelMatrix(m math.Mat4) {
	c.PushModelMatrix()
	c.SetModelMatrix(m)
}

func (c *Context) PushAndMultiplyModelMatrix(m math.Mat4) {
	c.PushModelMatrix()
	c.MultiplyModelMatrix(m)
}

func (c *Context) PopModelMatrix() {
	m, ok := c.matrixStack.pop()
	if !ok {
		core.LogWarn("PopModelMatrix: no model matrix to restore")
		return
	}
	c.activeObjectData.ModelMatrix = m
}

// Projection matrix

func (c *Context) ProjectionMatrix() math.Mat4 {
	return c.activeFrameData.ProjectionMatrix
}

func (c *Context) SetProjectionMatrix(m math.Mat4) {
	c.activeFrameData.ProjectionMatrix = m
	c.activeFrameData.InverseProjectionMatrix = m.Inverse()
}

func (c *Context) PushProjectionMatrix() {
	c.projectionStack.push(c.activeFrameData.ProjectionMatrix)
}

func (c *Context) PushAndSetProjectionMatrix(m math.Mat4) {
	c.PushProjectionMatrix()
	c.SetProjectionMatrix(m)
}

func (c *Context) PopProjectionMatrix() {
	m, ok := c.projectionStack.pop()
	if !ok {
		core.LogWarn("PopProjectionMatrix: no projection matrix to restore")
		return
	}
	c.SetProjectionMatrix(m)
}

// View matrix. The inverse is maintained alongside; there is no stack,
// the view changes at most once per frame.

func (c *Context) ViewMatrix() math.Mat4 {
	return c.activeFrameData.ViewMatrix
}

func (c *Context) SetViewMatrix(m math.Mat4) {
	c.activeFrameData.ViewMatrix = m
	c.activeFrameData.InverseViewMatrix = m.Inverse()
}

// Point size

func (c *Context) PointSize() float32 {
	return c.activeObjectData.PointSize
}

func (c *Context) SetPointSize(size float32) {
	c.activeObjectData.PointSize = size
}

func (c *Context) PushPointSize() {
	c.pointStack.push(c.activeObjectData.PointSize)
}

func (c *Context) PushAndSetPointSize(size float32) {
	c.PushPointSize()
	c.SetPointSize(size)
}

func (c *Context) PopPointSize() {
	size, ok := c.pointStack.pop()
	if !ok {
		core.LogWarn("PopPointSize: no point size to restore")
		return
	}
	c.activeObjectData.PointSize = size
}

// Material

func (c *Context) Material() metadata.MaterialData {
	return c.activeMaterial
}

func (c *Context) SetMaterial(params metadata.MaterialParameters) {
	c.activeMaterial = metadata.MaterialData{Mat: params, Enabled: true}
}

// DisableMaterial keeps the parameters but marks the material unused.
func (c *Context) DisableMaterial() {
	c.activeMaterial.Enabled = false
}

func (c *Context) PushMaterial() {
	c.materialStack.push(c.activeMaterial)
}

func (c *Context) PushAndSetMaterial(params metadata.MaterialParameters) {
	c.PushMaterial()
	c.SetMaterial(params)
}

func (c *Context) PopMaterial() {
	m, ok := c.materialStack.pop()
	if !ok {
		core.LogWarn("PopMaterial: no material to restore")
		return
	}
	c.activeMaterial = m
}
