package mesh

import (
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Strategy decides where a mesh's geometry lives and how it is drawn.
// A strategy is stateless over the meshes it serves; one instance can
// be shared by any number of meshes.
type Strategy interface {
	// Prepare brings the mesh's buffers into the residency the
	// strategy promises before a draw.
	Prepare(ctx *renderer.Context, m *Mesh) error
	// Display draws count vertices or indices starting at first.
	// Prepare must have run for the current geometry content.
	Display(ctx *renderer.Context, m *Mesh, first, count uint32) error
	// AssureLocalVertexData makes the host vertex copy exist, fetching
	// it back from the device if necessary.
	AssureLocalVertexData(m *Mesh) error
	// AssureLocalIndexData makes the host index copy exist.
	AssureLocalIndexData(m *Mesh) error
}

// SimpleStrategy covers the common residency policies through three
// knobs. The preset constructors below are the intended way to get one.
type SimpleStrategy struct {
	// Usage is the buffer usage hint passed to the device.
	Usage metadata.BufferUsage
	// PreserveLocal keeps the host copy after a successful upload.
	PreserveLocal bool
	// Transient destroys the device buffers after every display, so
	// device memory is only held while drawing.
	Transient bool
}

// NewStaticReleaseStrategy uploads once and frees the host copy: the
// cheapest policy for geometry that never changes and is never read
// back.
func NewStaticReleaseStrategy() *SimpleStrategy {
	return &SimpleStrategy{Usage: metadata.UsageStatic}
}

// NewStaticPreserveStrategy uploads once but keeps the host copy for
// later reads.
func NewStaticPreserveStrategy() *SimpleStrategy {
	return &SimpleStrategy{Usage: metadata.UsageStatic, PreserveLocal: true}
}

// NewDynamicVertexStrategy keeps the host copy and re-uploads whenever
// it changed, for geometry mutated across frames.
func NewDynamicVertexStrategy() *SimpleStrategy {
	return &SimpleStrategy{Usage: metadata.UsageDynamic, PreserveLocal: true}
}

// NewPureLocalStrategy treats the host copy as the only durable one:
// device buffers exist just long enough to draw.
func NewPureLocalStrategy() *SimpleStrategy {
	return &SimpleStrategy{Usage: metadata.UsageStream, PreserveLocal: true, Transient: true}
}

func (s *SimpleStrategy) Prepare(ctx *renderer.Context, m *Mesh) error {
	if err := s.prepareVertices(ctx, m); err != nil {
		return err
	}
	return s.prepareIndices(ctx, m)
}

func (s *SimpleStrategy) prepareVertices(ctx *renderer.Context, m *Mesh) error {
	vd := &m.Vertices
	if vd.Empty() {
		// Cleared geometry must not keep a stale device buffer alive.
		if vd.IsUploaded() {
			vd.RemoveBuffer()
		}
		return nil
	}
	if vd.Changed() || !vd.IsUploaded() {
		if !vd.HasLocalData() {
			return core.ErrInvalidArgument
		}
		if err := vd.Upload(ctx.Backend(), s.Usage); err != nil {
			return err
		}
		if !s.PreserveLocal {
			vd.ReleaseLocalData()
		}
	}
	return nil
}

func (s *SimpleStrategy) prepareIndices(ctx *renderer.Context, m *Mesh) error {
	id := &m.Indices
	if id.Empty() {
		if id.IsUploaded() {
			id.RemoveBuffer()
		}
		return nil
	}
	if id.Changed() || !id.IsUploaded() {
		if !id.HasLocalData() {
			return core.ErrInvalidArgument
		}
		if err := id.Upload(ctx.Backend(), s.Usage); err != nil {
			return err
		}
		if !s.PreserveLocal {
			id.ReleaseLocalData()
		}
	}
	return nil
}

func (s *SimpleStrategy) Display(ctx *renderer.Context, m *Mesh, first, count uint32) error {
	if count == 0 {
		return nil
	}
	vd := &m.Vertices
	if !vd.IsUploaded() {
		core.LogWarn("Display: mesh %s has no device vertex data", m.ID)
		return nil
	}
	if err := ctx.SetVertexLayout(vd.Layout(), 0); err != nil {
		return err
	}
	if err := ctx.BindVertexBuffer(0, vd.Buffer(), 0, vd.Layout().Stride, 0); err != nil {
		return err
	}
	var err error
	if m.Indices.Empty() {
		err = ctx.DrawArrays(m.DrawMode, first, count)
	} else {
		ctx.BindIndexBuffer(m.Indices.Buffer())
		err = ctx.DrawElements(m.DrawMode, metadata.IndexUint32, first, count)
		ctx.BindIndexBuffer(nil)
	}
	ctx.UnbindVertexBuffer(0)
	if s.Transient {
		vd.RemoveBuffer()
		m.Indices.RemoveBuffer()
	}
	return err
}

func (s *SimpleStrategy) AssureLocalVertexData(m *Mesh) error {
	if m.Vertices.HasLocalData() || m.Vertices.Empty() {
		return nil
	}
	return m.Vertices.Download()
}

func (s *SimpleStrategy) AssureLocalIndexData(m *Mesh) error {
	if m.Indices.HasLocalData() || m.Indices.Empty() {
		return nil
	}
	return m.Indices.Download()
}
