package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetro/engine/mesh"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := Default()
	want.AppName = "roundtrip"
	want.Renderer.ObjectDataCapacity = 1024
	want.Renderer.DefaultMeshStrategy = "dynamic-vertex"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContextConfigFallsBackToDefaults(t *testing.T) {
	var rc RendererConfig
	cc := rc.ContextConfig()
	assert.Equal(t, uint32(512), cc.ObjectDataCapacity)
	assert.Equal(t, uint32(2), cc.ObjectDataBufferCount)
	assert.Equal(t, uint32(256), cc.LightDataCapacity)
}

func TestMeshStrategyNames(t *testing.T) {
	cases := map[string]mesh.Strategy{
		"":                mesh.NewStaticReleaseStrategy(),
		"static-release":  mesh.NewStaticReleaseStrategy(),
		"static-preserve": mesh.NewStaticPreserveStrategy(),
		"dynamic-vertex":  mesh.NewDynamicVertexStrategy(),
		"pure-local":      mesh.NewPureLocalStrategy(),
	}
	for name, want := range cases {
		got, err := RendererConfig{DefaultMeshStrategy: name}.MeshStrategy()
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := RendererConfig{DefaultMeshStrategy: "bogus"}.MeshStrategy()
	assert.Error(t, err)
}
