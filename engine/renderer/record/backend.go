// Package record provides an in-memory device backend that records
// every command it receives. It backs unit tests of the state-tracking
// engine and doubles as a tracing tool: wrapping a frame with a record
// backend yields the exact command stream the frame produced.
package record

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Backend records device commands instead of executing them. Buffers
// are plain byte slices, so upload/download round-trips behave like a
// real device. The zero value is ready to use.
type Backend struct {
	// Ops lists the received commands in order, by method name.
	Ops []string
	// Fail injects an error for the named command. Commands without an
	// error return value report the injection on the next erroring one.
	Fail map[string]error

	nextBufferID uint32
}

// New returns an empty recording backend.
func New() *Backend {
	return &Backend{}
}

// Reset clears the recorded command stream, keeping injected failures.
func (b *Backend) Reset() {
	b.Ops = nil
}

// Count returns how many commands with the given name were recorded.
func (b *Backend) Count(name string) int {
	n := 0
	for _, op := range b.Ops {
		if op == name {
			n++
		}
	}
	return n
}

func (b *Backend) record(name string) error {
	b.Ops = append(b.Ops, name)
	if err, ok := b.Fail[name]; ok {
		return err
	}
	return nil
}

func (b *Backend) SetBlendState(metadata.BlendingParameters)        { b.record("SetBlendState") }
func (b *Backend) SetColorMask(metadata.ColorBufferParameters)      { b.record("SetColorMask") }
func (b *Backend) SetCullFace(metadata.CullFaceParameters)          { b.record("SetCullFace") }
func (b *Backend) SetDepthState(metadata.DepthBufferParameters)     { b.record("SetDepthState") }
func (b *Backend) SetStencilState(metadata.StencilParameters)       { b.record("SetStencilState") }
func (b *Backend) SetPolygonMode(metadata.PolygonModeParameters)    { b.record("SetPolygonMode") }
func (b *Backend) SetPolygonOffset(metadata.PolygonOffsetParameters) {
	b.record("SetPolygonOffset")
}
func (b *Backend) SetLineState(metadata.LineParameters) { b.record("SetLineState") }
func (b *Backend) SetViewport(math.Rect2i)              { b.record("SetViewport") }
func (b *Backend) SetScissor(metadata.ScissorParameters) {
	b.record("SetScissor")
}

func (b *Backend) BindFramebuffer(renderer.Framebuffer) error {
	return b.record("BindFramebuffer")
}

func (b *Backend) BindShader(renderer.Shader) error {
	return b.record("BindShader")
}

func (b *Backend) BindTextures([metadata.MaxTextureUnits]renderer.Texture) error {
	return b.record("BindTextures")
}

func (b *Backend) BindImage(unit uint8, img renderer.ImageBindParameters) error {
	return b.record("BindImage")
}

func (b *Backend) SetVertexFormats([metadata.MaxVertexAttribs]renderer.VertexFormat) {
	b.record("SetVertexFormats")
}

func (b *Backend) BindVertexBuffers([metadata.MaxVertexBindings]renderer.VertexBufferBinding) error {
	return b.record("BindVertexBuffers")
}

func (b *Backend) BindIndexBuffer(renderer.Buffer) error {
	return b.record("BindIndexBuffer")
}

func (b *Backend) CreateBuffer(size int, usage metadata.BufferUsage) (renderer.Buffer, error) {
	if err := b.record("CreateBuffer"); err != nil {
		return nil, err
	}
	b.nextBufferID++
	return &Buffer{backend: b, id: b.nextBufferID, data: make([]byte, size), usage: usage}, nil
}

func (b *Backend) DrawArrays(mode metadata.PrimitiveMode, first, count, drawID uint32) error {
	return b.record("DrawArrays")
}

func (b *Backend) DrawElements(mode metadata.PrimitiveMode, indexType metadata.IndexType, first, count, drawID uint32) error {
	return b.record("DrawElements")
}

func (b *Backend) DispatchCompute(groupsX, groupsY, groupsZ uint32) error {
	return b.record("DispatchCompute")
}

func (b *Backend) Clear(flags renderer.ClearFlags, color math.Color4f, depth float32, stencil int32) {
	b.record("Clear")
}

func (b *Backend) Barrier() { b.record("Barrier") }
func (b *Backend) Flush()   { b.record("Flush") }
func (b *Backend) Finish()  { b.record("Finish") }

// Buffer is a host-memory stand-in for a device buffer.
type Buffer struct {
	backend *Backend
	id      uint32
	data    []byte
	usage   metadata.BufferUsage
	dead    bool
}

func (buf *Buffer) Upload(data []byte, offset int) error {
	if buf.dead {
		return fmt.Errorf("upload to destroyed buffer %d: %w", buf.id, core.ErrInvalidArgument)
	}
	if offset < 0 || offset+len(data) > len(buf.data) {
		return fmt.Errorf("upload of %d bytes at offset %d exceeds buffer size %d: %w", len(data), offset, len(buf.data), core.ErrOutOfRange)
	}
	copy(buf.data[offset:], data)
	return nil
}

func (buf *Buffer) Download(n int) ([]byte, error) {
	if buf.dead {
		return nil, fmt.Errorf("download from destroyed buffer %d: %w", buf.id, core.ErrInvalidArgument)
	}
	if n < 0 || n > len(buf.data) {
		return nil, fmt.Errorf("download of %d bytes exceeds buffer size %d: %w", n, len(buf.data), core.ErrOutOfRange)
	}
	out := make([]byte, n)
	copy(out, buf.data[:n])
	return out, nil
}

func (buf *Buffer) Bind(target metadata.BufferTarget, location uint32) error {
	return buf.backend.record("BindBuffer")
}

func (buf *Buffer) Destroy() {
	buf.dead = true
	buf.data = nil
	buf.backend.record("DestroyBuffer")
}

func (buf *Buffer) IsValid() bool {
	return !buf.dead
}

func (buf *Buffer) Size() int {
	return len(buf.data)
}

// Bytes exposes the buffer content for assertions.
func (buf *Buffer) Bytes() []byte {
	return buf.data
}
