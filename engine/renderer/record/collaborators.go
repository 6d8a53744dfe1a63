package record

import (
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Shader is a scriptable shader collaborator for tests.
type Shader struct {
	ProgramHandle      uint32
	Blocks             []renderer.InterfaceBlock
	AttributeLocations map[string]int32

	// SyncedUniforms holds the values of the last SyncUniforms call.
	SyncedUniforms map[string]interface{}
	SyncCalls      int
	SyncErr        error
}

func (s *Shader) Handle() uint32 {
	return s.ProgramHandle
}

func (s *Shader) InterfaceBlocks() []renderer.InterfaceBlock {
	return s.Blocks
}

func (s *Shader) VertexAttributeLocation(name string) int32 {
	if loc, ok := s.AttributeLocations[name]; ok {
		return loc
	}
	return -1
}

func (s *Shader) SyncUniforms(values map[string]interface{}, forced bool) error {
	s.SyncCalls++
	if s.SyncErr != nil {
		return s.SyncErr
	}
	s.SyncedUniforms = make(map[string]interface{}, len(values))
	for k, v := range values {
		s.SyncedUniforms[k] = v
	}
	return nil
}

// Texture is a scriptable texture collaborator for tests.
type Texture struct {
	TextureHandle uint32
	Format        metadata.PixelFormat
	PrepareErr    error
	PrepareCalls  int
}

func (t *Texture) PrepareForBinding(ctx *renderer.Context) (uint32, error) {
	t.PrepareCalls++
	if t.PrepareErr != nil {
		return 0, t.PrepareErr
	}
	return t.TextureHandle, nil
}

func (t *Texture) Handle() uint32 {
	return t.TextureHandle
}

func (t *Texture) PixelFormat() metadata.PixelFormat {
	return t.Format
}

// Framebuffer is a handle-only framebuffer stand-in.
type Framebuffer struct {
	FBOHandle uint32
}

func (f *Framebuffer) Handle() uint32 {
	return f.FBOHandle
}
