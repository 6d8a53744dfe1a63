package renderer

import (
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Snapshot aggregates every tracked device-state category at one point
// in time. The context owns exactly two: the target snapshot mutated by
// the scoped setters, and the active snapshot that mirrors what was
// last applied to the device. Only the diff/apply engine writes the
// active snapshot.
//
// Snapshot is a plain value: assigning one copies all categories.
type Snapshot struct {
	blending      metadata.BlendingParameters
	colorBuffer   metadata.ColorBufferParameters
	cullFace      metadata.CullFaceParameters
	depthBuffer   metadata.DepthBufferParameters
	stencil       metadata.StencilParameters
	line          metadata.LineParameters
	polygonMode   metadata.PolygonModeParameters
	polygonOffset metadata.PolygonOffsetParameters
	scissor       metadata.ScissorParameters
	viewport      math.Rect2i

	framebuffer Framebuffer
	shader      Shader
	textures    [metadata.MaxTextureUnits]Texture
	images      [metadata.MaxImageUnits]ImageBindParameters

	vertexFormats  [metadata.MaxVertexAttribs]VertexFormat
	vertexBindings [metadata.MaxVertexBindings]VertexBufferBinding
	elementBuffer  Buffer
}

// newSnapshot returns a snapshot holding the documented context
// defaults: blending off, all color channels writable, back-face
// culling on, depth test enabled with less-than, stencil off, fill
// polygon mode, line width 1.
func newSnapshot() Snapshot {
	return Snapshot{
		blending:    metadata.NewBlendingParameters(),
		colorBuffer: metadata.NewColorBufferParameters(),
		cullFace:    metadata.NewCullFaceParameters(),
		depthBuffer: metadata.NewDepthBufferParameters(),
		stencil:     metadata.NewStencilParameters(),
		line:        metadata.NewLineParameters(),
	}
}

func (s *Snapshot) blendingChanged(o *Snapshot) bool      { return s.blending != o.blending }
func (s *Snapshot) colorBufferChanged(o *Snapshot) bool   { return s.colorBuffer != o.colorBuffer }
func (s *Snapshot) cullFaceChanged(o *Snapshot) bool      { return s.cullFace != o.cullFace }
func (s *Snapshot) depthBufferChanged(o *Snapshot) bool   { return s.depthBuffer != o.depthBuffer }
func (s *Snapshot) stencilChanged(o *Snapshot) bool       { return s.stencil != o.stencil }
func (s *Snapshot) lineChanged(o *Snapshot) bool          { return s.line != o.line }
func (s *Snapshot) polygonModeChanged(o *Snapshot) bool   { return s.polygonMode != o.polygonMode }
func (s *Snapshot) polygonOffsetChanged(o *Snapshot) bool { return s.polygonOffset != o.polygonOffset }
func (s *Snapshot) scissorChanged(o *Snapshot) bool       { return s.scissor != o.scissor }
func (s *Snapshot) viewportChanged(o *Snapshot) bool      { return s.viewport != o.viewport }
func (s *Snapshot) framebufferChanged(o *Snapshot) bool   { return s.framebuffer != o.framebuffer }
func (s *Snapshot) shaderChanged(o *Snapshot) bool        { return s.shader != o.shader }
func (s *Snapshot) texturesChanged(o *Snapshot) bool      { return s.textures != o.textures }
func (s *Snapshot) imagesChanged(o *Snapshot) bool        { return s.images != o.images }
func (s *Snapshot) vertexFormatsChanged(o *Snapshot) bool {
	return s.vertexFormats != o.vertexFormats
}
func (s *Snapshot) vertexBindingsChanged(o *Snapshot) bool {
	return s.vertexBindings != o.vertexBindings
}
func (s *Snapshot) elementBufferChanged(o *Snapshot) bool { return s.elementBuffer != o.elementBuffer }

// resetVertexFormats clears every attribute location referring to the
// given binding point.
func (s *Snapshot) resetVertexFormats(binding uint32) {
	for i := range s.vertexFormats {
		if s.vertexFormats[i].Binding == binding {
			s.vertexFormats[i] = VertexFormat{Binding: binding}
		}
	}
}
