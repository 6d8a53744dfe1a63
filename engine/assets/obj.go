// Package assets loads meshes and images from disk and watches the
// asset root for changes, so edited files flow back into device memory
// through the residency strategies.
package assets

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// MeshLayout is the interleaved vertex format the OBJ loader produces:
// position, normal, texture coordinate.
func MeshLayout() metadata.VertexLayout {
	return metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: metadata.AttributePosition, NumValues: 3, Type: metadata.TypeFloat32},
		metadata.VertexAttribute{Name: metadata.AttributeNormal, NumValues: 3, Type: metadata.TypeFloat32},
		metadata.VertexAttribute{Name: metadata.AttributeTexCoord, NumValues: 2, Type: metadata.TypeFloat32},
	)
}

type objIndex struct {
	v, vt, vn int
}

// LoadMeshOBJ reads a Wavefront OBJ file supporting the v/vt/vn/f
// subset, triangulating polygon faces as fans. The returned mesh has
// local data only; residency is decided by whatever strategy the caller
// assigns.
func LoadMeshOBJ(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	var positions, normals []math.Vec3
	var texCoords []math.Vec2
	var faces [][]objIndex

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			t, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			texCoords = append(texCoords, t)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 corners: %w", path, lineNo, core.ErrInvalidArgument)
			}
			face := make([]objIndex, 0, len(fields)-1)
			for _, corner := range fields[1:] {
				idx, err := parseCorner(corner, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				face = append(face, idx)
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}
	if len(positions) == 0 || len(faces) == 0 {
		return nil, fmt.Errorf("'%s' contains no geometry: %w", path, core.ErrInvalidArgument)
	}

	// Deduplicate position/uv/normal triples into interleaved vertices.
	unique := make(map[objIndex]uint32)
	var order []objIndex
	var indices []uint32
	add := func(idx objIndex) uint32 {
		if i, ok := unique[idx]; ok {
			return i
		}
		i := uint32(len(order))
		unique[idx] = i
		order = append(order, idx)
		return i
	}
	for _, face := range faces {
		for i := 2; i < len(face); i++ {
			indices = append(indices, add(face[0]), add(face[i-1]), add(face[i]))
		}
	}

	m := mesh.New()
	m.Name = path
	m.Vertices.Allocate(uint32(len(order)), MeshLayout())
	m.Indices.Allocate(uint32(len(indices)))
	for i, idx := range order {
		p := positions[idx.v]
		m.Vertices.SetPosition(uint32(i), p)
		if idx.vn >= 0 {
			n := normals[idx.vn]
			m.Vertices.SetFloats(uint32(i), metadata.AttributeNormal, n.X, n.Y, n.Z)
		}
		if idx.vt >= 0 {
			t := texCoords[idx.vt]
			m.Vertices.SetFloats(uint32(i), metadata.AttributeTexCoord, t.X, t.Y)
		}
	}
	for i, idx := range indices {
		m.Indices.SetIndex(uint32(i), idx)
	}
	m.Vertices.UpdateBoundingBox()
	return m, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components: %w", core.ErrInvalidArgument)
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("bad component '%s': %w", fields[i], core.ErrInvalidArgument)
		}
		out[i] = float32(v)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	if len(fields) < 2 {
		return math.Vec2{}, fmt.Errorf("expected 2 components: %w", core.ErrInvalidArgument)
	}
	u, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return math.Vec2{}, fmt.Errorf("bad component '%s': %w", fields[0], core.ErrInvalidArgument)
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return math.Vec2{}, fmt.Errorf("bad component '%s': %w", fields[1], core.ErrInvalidArgument)
	}
	return math.Vec2{X: float32(u), Y: float32(v)}, nil
}

// parseCorner handles the v, v/vt, v//vn and v/vt/vn face corner forms.
// OBJ indices are 1-based; negative indices count from the end.
func parseCorner(corner string, nv, nvt, nvn int) (objIndex, error) {
	parts := strings.Split(corner, "/")
	idx := objIndex{v: -1, vt: -1, vn: -1}
	resolve := func(s string, n int) (int, error) {
		raw, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("bad face index '%s': %w", s, core.ErrInvalidArgument)
		}
		if raw < 0 {
			raw = n + raw + 1
		}
		if raw < 1 || raw > n {
			return -1, fmt.Errorf("face index %s out of range: %w", s, core.ErrOutOfRange)
		}
		return raw - 1, nil
	}
	var err error
	if idx.v, err = resolve(parts[0], nv); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.vt, err = resolve(parts[1], nvt); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.vn, err = resolve(parts[2], nvn); err != nil {
			return idx, err
		}
	}
	return idx, nil
}
