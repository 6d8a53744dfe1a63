package systems

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// GeometrySystemConfig configures the geometry system. DefaultStrategy
// is mandatory: meshes never pick up an implicit global policy, the
// system hands its configured strategy to every mesh it creates.
type GeometrySystemConfig struct {
	DefaultStrategy mesh.Strategy
	// MaxMeshCount bounds the registry; 0 means unbounded.
	MaxMeshCount uint32
}

type meshReference struct {
	mesh        *mesh.Mesh
	refCount    uint32
	autoRelease bool
}

// GeometrySystem owns the lifetime of named meshes: acquire/release
// reference counting with optional automatic destruction when the last
// reference goes away.
type GeometrySystem struct {
	config     GeometrySystemConfig
	registered map[string]*meshReference
}

// NewGeometrySystem validates the config and returns an empty system.
func NewGeometrySystem(config GeometrySystemConfig) (*GeometrySystem, error) {
	if config.DefaultStrategy == nil {
		return nil, fmt.Errorf("geometry system requires a default strategy: %w", core.ErrInvalidArgument)
	}
	return &GeometrySystem{
		config:     config,
		registered: make(map[string]*meshReference),
	}, nil
}

// CreateMesh allocates a named mesh with the given format, registers it
// with one reference and assigns the configured default strategy.
func (s *GeometrySystem) CreateMesh(name string, vertexCount uint32, layout metadata.VertexLayout, indexCount uint32, autoRelease bool) (*mesh.Mesh, error) {
	if name == "" {
		return nil, fmt.Errorf("mesh name must not be empty: %w", core.ErrInvalidArgument)
	}
	if _, exists := s.registered[name]; exists {
		return nil, fmt.Errorf("mesh '%s' already registered: %w", name, core.ErrInvalidArgument)
	}
	if s.config.MaxMeshCount > 0 && uint32(len(s.registered)) >= s.config.MaxMeshCount {
		return nil, fmt.Errorf("mesh registry full (%d): %w", s.config.MaxMeshCount, core.ErrOutOfRange)
	}
	m := mesh.New()
	m.Name = name
	m.SetStrategy(s.config.DefaultStrategy)
	m.Vertices.Allocate(vertexCount, layout)
	if indexCount > 0 {
		m.Indices.Allocate(indexCount)
	}
	s.registered[name] = &meshReference{mesh: m, refCount: 1, autoRelease: autoRelease}
	return m, nil
}

// Acquire returns the named mesh and bumps its reference count.
func (s *GeometrySystem) Acquire(name string) (*mesh.Mesh, error) {
	ref, ok := s.registered[name]
	if !ok {
		return nil, fmt.Errorf("mesh '%s' is not registered: %w", name, core.ErrInvalidArgument)
	}
	ref.refCount++
	return ref.mesh, nil
}

// Release drops one reference. When the count reaches zero and the mesh
// was registered with autoRelease, its resources are freed and the name
// becomes available again.
func (s *GeometrySystem) Release(name string) {
	ref, ok := s.registered[name]
	if !ok {
		core.LogWarn("Release: mesh '%s' is not registered", name)
		return
	}
	if ref.refCount == 0 {
		core.LogWarn("Release: mesh '%s' already has no references", name)
		return
	}
	ref.refCount--
	if ref.refCount == 0 && ref.autoRelease {
		ref.mesh.Release()
		delete(s.registered, name)
	}
}

// MeshCount returns the number of registered meshes.
func (s *GeometrySystem) MeshCount() int {
	return len(s.registered)
}

// Shutdown releases every registered mesh regardless of references.
func (s *GeometrySystem) Shutdown() {
	for name, ref := range s.registered {
		ref.mesh.Release()
		delete(s.registered, name)
	}
}
