package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Buffer wraps one GL buffer object with immutable storage.
type Buffer struct {
	handle uint32
	size   int
}

func (b *Buffer) Upload(data []byte, offset int) error {
	if b.handle == 0 {
		return fmt.Errorf("upload to destroyed buffer: %w", core.ErrInvalidArgument)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("upload of %d bytes at offset %d exceeds buffer size %d: %w", len(data), offset, b.size, core.ErrOutOfRange)
	}
	if len(data) == 0 {
		return nil
	}
	gl.NamedBufferSubData(b.handle, offset, len(data), gl.Ptr(data))
	return nil
}

func (b *Buffer) Download(n int) ([]byte, error) {
	if b.handle == 0 {
		return nil, fmt.Errorf("download from destroyed buffer: %w", core.ErrInvalidArgument)
	}
	if n < 0 || n > b.size {
		return nil, fmt.Errorf("download of %d bytes exceeds buffer size %d: %w", n, b.size, core.ErrOutOfRange)
	}
	out := make([]byte, n)
	if n > 0 {
		gl.GetNamedBufferSubData(b.handle, 0, n, gl.Ptr(out))
	}
	return out, nil
}

func (b *Buffer) Bind(target metadata.BufferTarget, location uint32) error {
	if b.handle == 0 {
		return fmt.Errorf("bind of destroyed buffer: %w", core.ErrInvalidArgument)
	}
	switch target {
	case metadata.TargetUniformBuffer, metadata.TargetShaderStorageBuffer, metadata.TargetAtomicCounterBuffer:
		gl.BindBufferBase(bufferTargetToGL(target), location, b.handle)
	default:
		gl.BindBuffer(bufferTargetToGL(target), b.handle)
	}
	return nil
}

func (b *Buffer) Destroy() {
	if b.handle != 0 {
		gl.DeleteBuffers(1, &b.handle)
		b.handle = 0
	}
	b.size = 0
}

func (b *Buffer) IsValid() bool {
	return b.handle != 0
}

func (b *Buffer) Size() int {
	return b.size
}
