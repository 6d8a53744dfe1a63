package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# two triangles sharing an edge
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMeshOBJDeduplicatesSharedCorners(t *testing.T) {
	m, err := LoadMeshOBJ(writeOBJ(t, quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, uint32(4), m.Vertices.VertexCount(), "shared corners collapse to one vertex")
	assert.Equal(t, uint32(6), m.Indices.IndexCount())

	bb := m.Vertices.BoundingBox()
	assert.Equal(t, float32(0), bb.Min.X)
	assert.Equal(t, float32(1), bb.Max.Y)
	assert.Equal(t, float32(0), bb.Max.Z)
}

func TestLoadMeshOBJTriangulatesPolygons(t *testing.T) {
	pentagon := `v 0 0 0
v 1 0 0
v 1.5 1 0
v 0.5 1.8 0
v -0.5 1 0
f 1 2 3 4 5
`
	m, err := LoadMeshOBJ(writeOBJ(t, pentagon))
	require.NoError(t, err)

	// A 5-gon fans into 3 triangles.
	assert.Equal(t, uint32(9), m.Indices.IndexCount())
	assert.Equal(t, uint32(5), m.Vertices.VertexCount())
}

func TestLoadMeshOBJNegativeIndices(t *testing.T) {
	content := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := LoadMeshOBJ(writeOBJ(t, content))
	require.NoError(t, err)
	assert.Equal(t, uint32(3), m.Vertices.VertexCount())
}

func TestLoadMeshOBJRejectsBadInput(t *testing.T) {
	_, err := LoadMeshOBJ(writeOBJ(t, "v 0 0 0\nf 1 2 9\n"))
	assert.Error(t, err, "out-of-range face index")

	_, err = LoadMeshOBJ(writeOBJ(t, "# nothing here\n"))
	assert.Error(t, err, "no geometry")

	_, err = LoadMeshOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}
