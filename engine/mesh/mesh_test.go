package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
	"github.com/spaghettifunk/vetro/engine/renderer/record"
)

func positionLayout() metadata.VertexLayout {
	return metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: metadata.AttributePosition, NumValues: 3, Type: metadata.TypeFloat32},
	)
}

func newMeshTestContext(t *testing.T) (*renderer.Context, *record.Backend) {
	t.Helper()
	backend := record.New()
	ctx, err := renderer.NewContext(backend, renderer.NewContextConfig())
	require.NoError(t, err)
	backend.Reset()
	return ctx, backend
}

func newTriangle(t *testing.T, strategy mesh.Strategy) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	m.SetStrategy(strategy)
	m.Vertices.Allocate(3, positionLayout())
	m.Vertices.SetPosition(0, math.Vec3{X: 0, Y: 0, Z: 0})
	m.Vertices.SetPosition(1, math.Vec3{X: 1, Y: 0, Z: 0})
	m.Vertices.SetPosition(2, math.Vec3{X: 0, Y: 1, Z: 0})
	return m
}

func TestEmptyMeshIsNeverUploaded(t *testing.T) {
	ctx, _ := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewStaticPreserveStrategy())

	require.NoError(t, m.Prepare(ctx))
	require.True(t, m.Vertices.IsUploaded())

	// Clearing the geometry after it was uploaded must destroy the
	// stale device buffer on the next prepare.
	m.Vertices.Allocate(0, positionLayout())
	require.NoError(t, m.Prepare(ctx))
	assert.False(t, m.Vertices.IsUploaded())
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	ctx, _ := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewStaticPreserveStrategy())

	original := append([]byte(nil), m.Vertices.Data()...)

	require.NoError(t, m.Vertices.Upload(ctx.Backend(), metadata.UsageStatic))
	m.Vertices.ReleaseLocalData()
	require.NoError(t, m.Vertices.Download())

	assert.Equal(t, original, m.Vertices.Data())
	assert.False(t, m.Vertices.Changed())
}

func TestUpdateBoundingBox(t *testing.T) {
	m := newTriangle(t, nil)

	bb := m.Vertices.UpdateBoundingBox()

	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: 0}, bb.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 0}, bb.Max)
}

func TestStaticReleaseStrategyFreesLocalData(t *testing.T) {
	ctx, _ := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewStaticReleaseStrategy())

	require.NoError(t, m.Prepare(ctx))

	assert.True(t, m.Vertices.IsUploaded())
	assert.False(t, m.Vertices.HasLocalData())
}

func TestDynamicStrategyReuploadsChangedData(t *testing.T) {
	ctx, backend := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewDynamicVertexStrategy())

	require.NoError(t, m.Prepare(ctx))
	created := backend.Count("CreateBuffer")
	assert.True(t, m.Vertices.HasLocalData())

	// Unchanged data does not re-upload or re-create anything.
	require.NoError(t, m.Prepare(ctx))
	assert.Equal(t, created, backend.Count("CreateBuffer"))

	m.Vertices.SetPosition(0, math.Vec3{X: 5})
	require.True(t, m.Vertices.Changed())
	require.NoError(t, m.Prepare(ctx))
	assert.False(t, m.Vertices.Changed())
	assert.Equal(t, created, backend.Count("CreateBuffer"), "same-size re-upload reuses the buffer")
}

func TestPureLocalStrategyKeepsDeviceMemoryTransient(t *testing.T) {
	ctx, backend := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewPureLocalStrategy())

	require.NoError(t, m.Display(ctx))

	assert.Equal(t, 1, backend.Count("DrawArrays"))
	assert.False(t, m.Vertices.IsUploaded())
	assert.True(t, m.Vertices.HasLocalData())
}

func TestIndexedDisplayDrawsElements(t *testing.T) {
	ctx, backend := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewStaticPreserveStrategy())
	m.Indices.Allocate(3)
	m.Indices.SetIndex(0, 0)
	m.Indices.SetIndex(1, 1)
	m.Indices.SetIndex(2, 2)

	require.NoError(t, m.Display(ctx))

	assert.Equal(t, 1, backend.Count("DrawElements"))
	assert.Equal(t, 0, backend.Count("DrawArrays"))
	assert.Equal(t, uint32(3), m.DrawCount())
}

func TestIndexRoundTrip(t *testing.T) {
	ctx, _ := newMeshTestContext(t)
	var d mesh.IndexData
	d.Allocate(4)
	for i := uint32(0); i < 4; i++ {
		d.SetIndex(i, 100+i)
	}

	require.NoError(t, d.Upload(ctx.Backend(), metadata.UsageStatic))
	d.ReleaseLocalData()
	require.NoError(t, d.Download())

	assert.Equal(t, []uint32{100, 101, 102, 103}, d.Indices())
}

func TestBoundingBoxFetchesReleasedData(t *testing.T) {
	ctx, _ := newMeshTestContext(t)
	m := newTriangle(t, mesh.NewStaticReleaseStrategy())

	require.NoError(t, m.Prepare(ctx))
	require.False(t, m.Vertices.HasLocalData())

	bb, err := m.BoundingBox()
	require.NoError(t, err)
	assert.Equal(t, float32(1), bb.Max.X)
}
