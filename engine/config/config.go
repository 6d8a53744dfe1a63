// Package config loads the engine configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer"
)

// Config is the full engine configuration.
type Config struct {
	AppName  string         `toml:"app_name"`
	LogLevel string         `toml:"log_level"`
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type RendererConfig struct {
	ObjectDataCapacity    uint32 `toml:"object_data_capacity"`
	ObjectDataBufferCount uint32 `toml:"object_data_buffer_count"`
	LightDataCapacity     uint32 `toml:"light_data_capacity"`
	// DefaultMeshStrategy selects the residency policy new meshes get:
	// static-release, static-preserve, dynamic-vertex or pure-local.
	DefaultMeshStrategy string `toml:"default_mesh_strategy"`
}

type AssetsConfig struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		AppName:  "Vetro",
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "Vetro",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			ObjectDataCapacity:    512,
			ObjectDataBufferCount: 2,
			LightDataCapacity:     256,
			DefaultMeshStrategy:   "static-release",
		},
		Assets: AssetsConfig{
			Dir:   "assets",
			Watch: false,
		},
	}
}

// Load reads a TOML file, filling unset fields from the defaults. A
// missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func Save(path string, cfg Config) error {
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

// ContextConfig maps the renderer section onto the context's cache
// sizing.
func (c RendererConfig) ContextConfig() renderer.ContextConfig {
	cfg := renderer.NewContextConfig()
	if c.ObjectDataCapacity > 0 {
		cfg.ObjectDataCapacity = c.ObjectDataCapacity
	}
	if c.ObjectDataBufferCount > 0 {
		cfg.ObjectDataBufferCount = c.ObjectDataBufferCount
	}
	if c.LightDataCapacity > 0 {
		cfg.LightDataCapacity = c.LightDataCapacity
	}
	return cfg
}

// MeshStrategy resolves the configured residency policy name.
func (c RendererConfig) MeshStrategy() (mesh.Strategy, error) {
	switch c.DefaultMeshStrategy {
	case "", "static-release":
		return mesh.NewStaticReleaseStrategy(), nil
	case "static-preserve":
		return mesh.NewStaticPreserveStrategy(), nil
	case "dynamic-vertex":
		return mesh.NewDynamicVertexStrategy(), nil
	case "pure-local":
		return mesh.NewPureLocalStrategy(), nil
	}
	return nil, fmt.Errorf("unknown mesh strategy '%s': %w", c.DefaultMeshStrategy, core.ErrInvalidArgument)
}

// CoreLogLevel maps the configured level name onto the logger.
func (c Config) CoreLogLevel() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}
