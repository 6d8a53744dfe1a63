package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

func testLayout() metadata.VertexLayout {
	return metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: metadata.AttributePosition, NumValues: 3, Type: metadata.TypeFloat32},
	)
}

func TestNewGeometrySystemRequiresDefaultStrategy(t *testing.T) {
	_, err := NewGeometrySystem(GeometrySystemConfig{})
	assert.Error(t, err)
}

func TestCreateMeshAssignsDefaultStrategy(t *testing.T) {
	strategy := mesh.NewStaticPreserveStrategy()
	s, err := NewGeometrySystem(GeometrySystemConfig{DefaultStrategy: strategy})
	require.NoError(t, err)

	m, err := s.CreateMesh("cube", 8, testLayout(), 36, true)
	require.NoError(t, err)
	assert.Equal(t, strategy, m.Strategy())
	assert.Equal(t, uint32(8), m.Vertices.VertexCount())
	assert.Equal(t, uint32(36), m.Indices.IndexCount())

	_, err = s.CreateMesh("cube", 8, testLayout(), 36, true)
	assert.Error(t, err, "duplicate names are rejected")
}

func TestAcquireReleaseRefCounting(t *testing.T) {
	s, err := NewGeometrySystem(GeometrySystemConfig{DefaultStrategy: mesh.NewStaticReleaseStrategy()})
	require.NoError(t, err)

	created, err := s.CreateMesh("tri", 3, testLayout(), 0, true)
	require.NoError(t, err)

	acquired, err := s.Acquire("tri")
	require.NoError(t, err)
	assert.Same(t, created, acquired)

	s.Release("tri")
	assert.Equal(t, 1, s.MeshCount(), "one reference left, mesh survives")
	s.Release("tri")
	assert.Equal(t, 0, s.MeshCount(), "auto-release frees on the last reference")

	_, err = s.Acquire("tri")
	assert.Error(t, err)
}

func TestReleaseWithoutAutoReleaseKeepsMesh(t *testing.T) {
	s, err := NewGeometrySystem(GeometrySystemConfig{DefaultStrategy: mesh.NewStaticReleaseStrategy()})
	require.NoError(t, err)

	_, err = s.CreateMesh("persistent", 3, testLayout(), 0, false)
	require.NoError(t, err)

	s.Release("persistent")
	assert.Equal(t, 1, s.MeshCount())

	// Releasing past zero is reported and ignored.
	s.Release("persistent")
	assert.Equal(t, 1, s.MeshCount())
}

func TestMaxMeshCount(t *testing.T) {
	s, err := NewGeometrySystem(GeometrySystemConfig{
		DefaultStrategy: mesh.NewStaticReleaseStrategy(),
		MaxMeshCount:    1,
	})
	require.NoError(t, err)

	_, err = s.CreateMesh("a", 3, testLayout(), 0, true)
	require.NoError(t, err)
	_, err = s.CreateMesh("b", 3, testLayout(), 0, true)
	assert.Error(t, err)
}
