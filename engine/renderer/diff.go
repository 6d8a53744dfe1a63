package renderer

import (
	"errors"
	"fmt"
)

// StateDiff is a bitset with one bit per tracked state category.
type StateDiff uint32

const (
	diffVertexBindings StateDiff = 1 << iota
	diffElementBuffer
	diffBlending
	diffColorBuffer
	diffCullFace
	diffDepthBuffer
	diffStencil
	diffPolygonMode
	diffPolygonOffset
	diffLine
	diffViewport
	diffScissor
	diffFramebuffer
	diffShader
	diffVertexFormats
	diffTextures
	diffImages

	diffAll = diffImages<<1 - 1
)

func (d StateDiff) test(bit StateDiff) bool {
	return d&bit != 0
}

// makeDiff computes which categories differ between the active and the
// target snapshot. With forced set, every category is marked regardless
// of equality (used to recover from external state corruption).
func makeDiff(active, target *Snapshot, forced bool) StateDiff {
	if forced {
		return diffAll
	}
	var d StateDiff
	if active.vertexBindingsChanged(target) {
		d |= diffVertexBindings
	}
	if active.elementBufferChanged(target) {
		d |= diffElementBuffer
	}
	if active.blendingChanged(target) {
		d |= diffBlending
	}
	if active.colorBufferChanged(target) {
		d |= diffColorBuffer
	}
	if active.cullFaceChanged(target) {
		d |= diffCullFace
	}
	if active.depthBufferChanged(target) {
		d |= diffDepthBuffer
	}
	if active.stencilChanged(target) {
		d |= diffStencil
	}
	if active.polygonModeChanged(target) {
		d |= diffPolygonMode
	}
	if active.polygonOffsetChanged(target) {
		d |= diffPolygonOffset
	}
	if active.lineChanged(target) {
		d |= diffLine
	}
	if active.viewportChanged(target) {
		d |= diffViewport
	}
	if active.scissorChanged(target) {
		d |= diffScissor
	}
	if active.framebufferChanged(target) {
		d |= diffFramebuffer
	}
	if active.shaderChanged(target) {
		d |= diffShader
	}
	if active.vertexFormatsChanged(target) {
		d |= diffVertexFormats
	}
	if active.texturesChanged(target) {
		d |= diffTextures
	}
	if active.imagesChanged(target) {
		d |= diffImages
	}
	return d
}

// applyDiff issues one device command per marked category, in a fixed
// order: buffer bindings, fixed-function state, viewport/scissor,
// framebuffer, shader, then the shader-dependent vertex formats and
// finally texture and image units. Vertex formats must follow the
// shader bind because attribute locations are resolved against the
// bound program.
func applyDiff(b Backend, s *Snapshot, diff StateDiff) error {
	var errs []error

	if diff.test(diffVertexBindings) {
		if err := b.BindVertexBuffers(s.vertexBindings); err != nil {
			errs = append(errs, fmt.Errorf("vertex buffers: %w", err))
		}
	}
	if diff.test(diffElementBuffer) {
		if err := b.BindIndexBuffer(s.elementBuffer); err != nil {
			errs = append(errs, fmt.Errorf("index buffer: %w", err))
		}
	}
	if diff.test(diffBlending) {
		b.SetBlendState(s.blending)
	}
	if diff.test(diffColorBuffer) {
		b.SetColorMask(s.colorBuffer)
	}
	if diff.test(diffCullFace) {
		b.SetCullFace(s.cullFace)
	}
	if diff.test(diffDepthBuffer) {
		b.SetDepthState(s.depthBuffer)
	}
	if diff.test(diffStencil) {
		b.SetStencilState(s.stencil)
	}
	if diff.test(diffPolygonMode) {
		b.SetPolygonMode(s.polygonMode)
	}
	if diff.test(diffPolygonOffset) {
		b.SetPolygonOffset(s.polygonOffset)
	}
	if diff.test(diffLine) {
		b.SetLineState(s.line)
	}
	if diff.test(diffViewport) {
		b.SetViewport(s.viewport)
	}
	if diff.test(diffScissor) {
		b.SetScissor(s.scissor)
	}
	if diff.test(diffFramebuffer) {
		if err := b.BindFramebuffer(s.framebuffer); err != nil {
			errs = append(errs, fmt.Errorf("framebuffer: %w", err))
		}
	}
	if diff.test(diffShader) {
		if err := b.BindShader(s.shader); err != nil {
			errs = append(errs, fmt.Errorf("shader: %w", err))
		}
	}
	if diff.test(diffVertexFormats) {
		b.SetVertexFormats(s.vertexFormats)
	}
	if diff.test(diffTextures) {
		if err := b.BindTextures(s.textures); err != nil {
			errs = append(errs, fmt.Errorf("textures: %w", err))
		}
	}
	if diff.test(diffImages) {
		for unit := range s.images {
			if err := b.BindImage(uint8(unit), s.images[unit]); err != nil {
				errs = append(errs, fmt.Errorf("image unit %d: %w", unit, err))
			}
		}
	}
	return errors.Join(errs...)
}
