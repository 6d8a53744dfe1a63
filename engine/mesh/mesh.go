// Package mesh holds geometry data and the residency strategies that
// move it between host memory and device buffers.
package mesh

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// Mesh ties vertex and index data to a draw mode and a residency
// strategy. A Mesh without a strategy cannot be displayed; the geometry
// system assigns its configured default on creation.
type Mesh struct {
	ID       uuid.UUID
	Name     string
	DrawMode metadata.PrimitiveMode
	Vertices VertexData
	Indices  IndexData

	strategy Strategy
}

// New returns an empty mesh drawing triangles.
func New() *Mesh {
	return &Mesh{
		ID:       uuid.New(),
		DrawMode: metadata.PrimitiveTriangles,
	}
}

// Strategy returns the mesh's residency strategy, which may be nil.
func (m *Mesh) Strategy() Strategy {
	return m.strategy
}

// SetStrategy replaces the residency strategy. The previous strategy's
// residency decisions stay in effect until the next Prepare.
func (m *Mesh) SetStrategy(s Strategy) {
	m.strategy = s
}

// DrawCount returns the number of elements a full display covers:
// index count for indexed meshes, vertex count otherwise.
func (m *Mesh) DrawCount() uint32 {
	if !m.Indices.Empty() {
		return m.Indices.IndexCount()
	}
	return m.Vertices.VertexCount()
}

// Prepare runs the residency strategy, making the mesh drawable.
func (m *Mesh) Prepare(ctx *renderer.Context) error {
	if m.strategy == nil {
		return core.ErrInvalidArgument
	}
	return m.strategy.Prepare(ctx, m)
}

// Display prepares the mesh and draws its full range.
func (m *Mesh) Display(ctx *renderer.Context) error {
	return m.DisplayRange(ctx, 0, m.DrawCount())
}

// DisplayRange prepares the mesh and draws count elements starting at
// first.
func (m *Mesh) DisplayRange(ctx *renderer.Context, first, count uint32) error {
	if m.strategy == nil {
		return core.ErrInvalidArgument
	}
	if err := m.strategy.Prepare(ctx, m); err != nil {
		return err
	}
	return m.strategy.Display(ctx, m, first, count)
}

// BoundingBox recomputes and returns the mesh bounds, fetching vertex
// data back from the device if the host copy was released.
func (m *Mesh) BoundingBox() (math.Extents3D, error) {
	if m.strategy != nil {
		if err := m.strategy.AssureLocalVertexData(m); err != nil {
			return math.Extents3D{}, err
		}
	}
	return m.Vertices.UpdateBoundingBox(), nil
}

// Release frees both host and device resources.
func (m *Mesh) Release() {
	m.Vertices.Release()
	m.Indices.Release()
}
