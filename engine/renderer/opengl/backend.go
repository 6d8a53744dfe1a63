// Package opengl drives a real OpenGL 4.6 core device. One Backend
// maps each state category and binding onto its direct-state-access GL
// call; the diff/apply engine above it guarantees calls only happen on
// actual state changes.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Backend implements renderer.Backend on an OpenGL 4.6 core context.
// The GL context must be current on the calling thread for every
// method.
type Backend struct {
	vao uint32

	unsupportedImageFormats map[metadata.PixelFormat]bool
}

// NewBackend loads the GL function pointers and creates the single
// vertex array object the separated attribute format state lives in.
func NewBackend() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	b := &Backend{
		unsupportedImageFormats: make(map[metadata.PixelFormat]bool),
	}
	gl.CreateVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	core.LogInfo("OpenGL device: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	return b, nil
}

// Shutdown releases the backend's own GL objects.
func (b *Backend) Shutdown() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}

func setCapability(cap uint32, enabled bool) {
	if enabled {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func (b *Backend) SetBlendState(p metadata.BlendingParameters) {
	setCapability(gl.BLEND, p.Enabled)
	gl.BlendFuncSeparate(blendFuncToGL(p.SrcFuncRGB), blendFuncToGL(p.DstFuncRGB), blendFuncToGL(p.SrcFuncAlpha), blendFuncToGL(p.DstFuncAlpha))
	gl.BlendEquationSeparate(blendEquationToGL(p.EquationRGB), blendEquationToGL(p.EquationAlpha))
	gl.BlendColor(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
}

func (b *Backend) SetColorMask(p metadata.ColorBufferParameters) {
	gl.ColorMask(p.RedWritingEnabled, p.GreenWritingEnabled, p.BlueWritingEnabled, p.AlphaWritingEnabled)
}

func (b *Backend) SetCullFace(p metadata.CullFaceParameters) {
	setCapability(gl.CULL_FACE, p.Enabled)
	gl.CullFace(cullModeToGL(p.Mode))
}

func (b *Backend) SetDepthState(p metadata.DepthBufferParameters) {
	setCapability(gl.DEPTH_TEST, p.TestEnabled)
	gl.DepthMask(p.WritingEnabled)
	gl.DepthFunc(comparisonToGL(p.Function))
}

func (b *Backend) SetStencilState(p metadata.StencilParameters) {
	setCapability(gl.STENCIL_TEST, p.Enabled)
	gl.StencilFunc(comparisonToGL(p.Function), p.ReferenceValue, p.BitMask)
	gl.StencilOp(stencilActionToGL(p.FailAction), stencilActionToGL(p.DepthTestFailAction), stencilActionToGL(p.DepthTestPassAction))
}

func (b *Backend) SetPolygonMode(p metadata.PolygonModeParameters) {
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonModeToGL(p.Mode))
}

func (b *Backend) SetPolygonOffset(p metadata.PolygonOffsetParameters) {
	setCapability(gl.POLYGON_OFFSET_FILL, p.Enabled)
	setCapability(gl.POLYGON_OFFSET_LINE, p.Enabled)
	setCapability(gl.POLYGON_OFFSET_POINT, p.Enabled)
	gl.PolygonOffset(p.Factor, p.Units)
}

func (b *Backend) SetLineState(p metadata.LineParameters) {
	gl.LineWidth(p.Width)
}

func (b *Backend) SetViewport(vp math.Rect2i) {
	gl.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
}

func (b *Backend) SetScissor(p metadata.ScissorParameters) {
	setCapability(gl.SCISSOR_TEST, p.Enabled)
	gl.Scissor(p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height)
}

func (b *Backend) BindFramebuffer(fbo renderer.Framebuffer) error {
	handle := uint32(0)
	if fbo != nil {
		handle = fbo.Handle()
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, handle)
	return nil
}

func (b *Backend) BindShader(shader renderer.Shader) error {
	handle := uint32(0)
	if shader != nil {
		handle = shader.Handle()
	}
	gl.UseProgram(handle)
	return nil
}

func (b *Backend) BindTextures(textures [metadata.MaxTextureUnits]renderer.Texture) error {
	var handles [metadata.MaxTextureUnits]uint32
	for i, t := range textures {
		if t != nil {
			handles[i] = t.Handle()
		}
	}
	gl.BindTextures(0, metadata.MaxTextureUnits, &handles[0])
	return nil
}

func (b *Backend) BindImage(unit uint8, img renderer.ImageBindParameters) error {
	if img.Texture == nil {
		gl.BindImageTexture(uint32(unit), 0, 0, false, 0, gl.READ_ONLY, gl.R32F)
		return nil
	}
	format, ok := imageFormatToGL(img.Texture.PixelFormat())
	if !ok {
		pf := img.Texture.PixelFormat()
		if !b.unsupportedImageFormats[pf] {
			b.unsupportedImageFormats[pf] = true
			core.LogWarn("no image format for pixel format %+v, image binding skipped", pf)
		}
		return nil
	}
	access := uint32(gl.READ_ONLY)
	switch {
	case img.ReadOperations && img.WriteOperations:
		access = gl.READ_WRITE
	case img.WriteOperations:
		access = gl.WRITE_ONLY
	}
	gl.BindImageTexture(uint32(unit), img.Texture.Handle(), int32(img.Level), img.MultiLayer, int32(img.Layer), access, format)
	return nil
}

func (b *Backend) SetVertexFormats(formats [metadata.MaxVertexAttribs]renderer.VertexFormat) {
	for location, format := range formats {
		attr := format.Attribute
		if attr.Empty() {
			gl.DisableVertexArrayAttrib(b.vao, uint32(location))
			continue
		}
		gl.EnableVertexArrayAttrib(b.vao, uint32(location))
		glType := dataTypeToGL(attr.Type)
		if attr.Type == metadata.TypeFloat32 || attr.ConvertToFloat {
			gl.VertexArrayAttribFormat(b.vao, uint32(location), int32(attr.NumValues), glType, attr.Normalize, attr.Offset)
		} else {
			gl.VertexArrayAttribIFormat(b.vao, uint32(location), int32(attr.NumValues), glType, attr.Offset)
		}
		gl.VertexArrayAttribBinding(b.vao, uint32(location), format.Binding)
	}
}

func (b *Backend) BindVertexBuffers(bindings [metadata.MaxVertexBindings]renderer.VertexBufferBinding) error {
	for i, binding := range bindings {
		handle := uint32(0)
		stride := int32(16)
		if binding.Buffer != nil {
			buf, ok := binding.Buffer.(*Buffer)
			if !ok {
				return fmt.Errorf("foreign buffer at vertex binding %d: %w", i, core.ErrInvalidArgument)
			}
			handle = buf.handle
			stride = int32(binding.Stride)
		}
		gl.VertexArrayVertexBuffer(b.vao, uint32(i), handle, int(binding.Offset), stride)
		gl.VertexArrayBindingDivisor(b.vao, uint32(i), binding.Divisor)
	}
	return nil
}

func (b *Backend) BindIndexBuffer(buffer renderer.Buffer) error {
	handle := uint32(0)
	if buffer != nil {
		buf, ok := buffer.(*Buffer)
		if !ok {
			return fmt.Errorf("foreign index buffer: %w", core.ErrInvalidArgument)
		}
		handle = buf.handle
	}
	gl.VertexArrayElementBuffer(b.vao, handle)
	return nil
}

func (b *Backend) CreateBuffer(size int, usage metadata.BufferUsage) (renderer.Buffer, error) {
	var handle uint32
	gl.CreateBuffers(1, &handle)
	if handle == 0 {
		return nil, fmt.Errorf("creating buffer of %d bytes: %w", size, core.ErrResourceCreation)
	}
	flags := usageToGLStorageFlags(usage)
	// Downloads go through glGetNamedBufferSubData, uploads through
	// glNamedBufferSubData, so every buffer needs dynamic storage.
	flags |= gl.DYNAMIC_STORAGE_BIT
	gl.NamedBufferStorage(handle, size, nil, flags)
	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteBuffers(1, &handle)
		return nil, fmt.Errorf("allocating %d bytes of buffer storage (gl error 0x%x): %w", size, glErr, core.ErrResourceCreation)
	}
	return &Buffer{handle: handle, size: size}, nil
}

func (b *Backend) DrawArrays(mode metadata.PrimitiveMode, first, count, drawID uint32) error {
	gl.DrawArraysInstancedBaseInstance(primitiveModeToGL(mode), int32(first), int32(count), 1, drawID)
	return nil
}

func (b *Backend) DrawElements(mode metadata.PrimitiveMode, indexType metadata.IndexType, first, count, drawID uint32) error {
	offset := uintptr(first * indexType.Size())
	gl.DrawElementsInstancedBaseVertexBaseInstance(primitiveModeToGL(mode), int32(count), indexTypeToGL(indexType), gl.PtrOffset(int(offset)), 1, 0, drawID)
	return nil
}

func (b *Backend) DispatchCompute(groupsX, groupsY, groupsZ uint32) error {
	gl.DispatchCompute(groupsX, groupsY, groupsZ)
	return nil
}

func (b *Backend) Clear(flags renderer.ClearFlags, color math.Color4f, depth float32, stencil int32) {
	var mask uint32
	if flags&renderer.ClearColorBuffer != 0 {
		gl.ClearColor(color.R, color.G, color.B, color.A)
		mask |= gl.COLOR_BUFFER_BIT
	}
	if flags&renderer.ClearDepthBuffer != 0 {
		gl.ClearDepthf(depth)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if flags&renderer.ClearStencilBuffer != 0 {
		gl.ClearStencil(stencil)
		mask |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (b *Backend) Barrier() {
	gl.MemoryBarrier(gl.ALL_BARRIER_BITS)
}

func (b *Backend) Flush() {
	gl.Flush()
}

func (b *Backend) Finish() {
	gl.Finish()
}
