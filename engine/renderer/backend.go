package renderer

import (
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// ClearFlags selects which buffers a clear operation touches.
type ClearFlags uint8

const (
	ClearColorBuffer ClearFlags = 1 << iota
	ClearDepthBuffer
	ClearStencilBuffer
)

// Buffer is a device-resident byte buffer. Implementations own the
// device handle; the renderer only moves bytes in and out and binds.
type Buffer interface {
	// Upload writes data at the given byte offset.
	Upload(data []byte, offset int) error
	// Download reads n bytes starting at the beginning of the buffer.
	Download(n int) ([]byte, error)
	// Bind attaches the buffer to an indexed bind point.
	Bind(target metadata.BufferTarget, location uint32) error
	// Destroy frees the device storage. The buffer is invalid afterwards.
	Destroy()
	IsValid() bool
	Size() int
}

// InterfaceBlock is one named shader interface point a cache slot can
// be bound to.
type InterfaceBlock struct {
	Name     string
	Location int32
	Target   metadata.BufferTarget
}

// Shader is the shader collaborator. Compilation and reflection happen
// elsewhere; the context only needs the interface surface below.
type Shader interface {
	// Handle returns the device program handle.
	Handle() uint32
	// InterfaceBlocks lists the declared interface blocks.
	InterfaceBlocks() []InterfaceBlock
	// VertexAttributeLocation resolves a vertex attribute bind location
	// by semantic name, or -1 if the shader does not consume it.
	VertexAttributeLocation(name string) int32
	// SyncUniforms flushes pending global uniform values into the
	// program. With forced set, every value is re-applied regardless of
	// the shader's own bookkeeping.
	SyncUniforms(values map[string]interface{}, forced bool) error
}

// Texture is the texture collaborator. Pixel upload and format
// negotiation happen elsewhere.
type Texture interface {
	// PrepareForBinding makes the texture device-resident and returns
	// its device handle.
	PrepareForBinding(ctx *Context) (uint32, error)
	Handle() uint32
	PixelFormat() metadata.PixelFormat
}

// Framebuffer is a render target the context can bind. A nil
// framebuffer means the default (window) target.
type Framebuffer interface {
	Handle() uint32
}

// ImageBindParameters describes one image load/store unit binding.
// A nil Texture unbinds the unit.
type ImageBindParameters struct {
	Texture         Texture
	Level           uint32
	Layer           uint32
	MultiLayer      bool
	ReadOperations  bool
	WriteOperations bool
}

// VertexFormat is the resolved attribute format at one attribute
// location, referring to a vertex buffer binding point.
type VertexFormat struct {
	Attribute metadata.VertexAttribute
	Binding   uint32
}

// VertexBufferBinding attaches a buffer to a vertex binding point.
type VertexBufferBinding struct {
	Buffer  Buffer
	Offset  uint32
	Stride  uint32
	Divisor uint32
}

// Backend is the device collaborator: one implementation per graphics
// API. Every method is a single logical device command; the diff/apply
// engine guarantees a command is only issued when the corresponding
// state category actually changed (or a forced apply is requested).
// All calls must happen on the thread owning the device context.
type Backend interface {
	// Fixed-function state categories.
	SetBlendState(p metadata.BlendingParameters)
	SetColorMask(p metadata.ColorBufferParameters)
	SetCullFace(p metadata.CullFaceParameters)
	SetDepthState(p metadata.DepthBufferParameters)
	SetStencilState(p metadata.StencilParameters)
	SetPolygonMode(p metadata.PolygonModeParameters)
	SetPolygonOffset(p metadata.PolygonOffsetParameters)
	SetLineState(p metadata.LineParameters)
	SetViewport(vp math.Rect2i)
	SetScissor(p metadata.ScissorParameters)

	// Bindings.
	BindFramebuffer(fbo Framebuffer) error
	BindShader(shader Shader) error
	BindTextures(textures [metadata.MaxTextureUnits]Texture) error
	BindImage(unit uint8, img ImageBindParameters) error
	SetVertexFormats(formats [metadata.MaxVertexAttribs]VertexFormat)
	BindVertexBuffers(bindings [metadata.MaxVertexBindings]VertexBufferBinding) error
	BindIndexBuffer(buffer Buffer) error

	// Resources.
	CreateBuffer(size int, usage metadata.BufferUsage) (Buffer, error)

	// Submission. drawID is the index of the per-draw record appended
	// for this draw call.
	DrawArrays(mode metadata.PrimitiveMode, first, count, drawID uint32) error
	DrawElements(mode metadata.PrimitiveMode, indexType metadata.IndexType, first, count, drawID uint32) error
	DispatchCompute(groupsX, groupsY, groupsZ uint32) error
	Clear(flags ClearFlags, color math.Color4f, depth float32, stencil int32)
	Barrier()
	Flush()
	Finish()
}
