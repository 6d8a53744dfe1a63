// Package engine wires configuration, window, device backend, rendering
// context and the supporting systems into a runnable application shell.
package engine

import (
	"context"

	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/platform"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/opengl"
	"github.com/spaghettifunk/vetro/engine/systems"
)

// UpdateFunc runs once per frame with the seconds elapsed since the
// previous frame.
type UpdateFunc func(ctx *renderer.Context, deltaTime float64) error

// Engine owns the application lifetime: startup order is config,
// window, device backend, rendering context, systems; shutdown runs in
// reverse.
type Engine struct {
	cfg      config.Config
	platform *platform.Platform
	backend  *opengl.Backend
	ctx      *renderer.Context
	geometry *systems.GeometrySystem
	watcher  *assets.Watcher

	clock   *core.Clock
	metrics *core.Metrics

	stopWatcher context.CancelFunc
}

// New builds an engine from the configuration without touching the
// device yet.
func New(cfg config.Config) (*Engine, error) {
	p, err := platform.New()
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		platform: p,
		clock:    core.NewClock(),
		metrics:  core.NewMetrics(),
	}, nil
}

// Startup creates the window and device and brings every system up.
func (e *Engine) Startup() error {
	core.SetLogLevel(e.cfg.CoreLogLevel())
	core.LogInfo("starting %s", e.cfg.AppName)

	if err := e.platform.Startup(e.cfg.Window.Title, uint32(e.cfg.Window.Width), uint32(e.cfg.Window.Height)); err != nil {
		return err
	}
	backend, err := opengl.NewBackend()
	if err != nil {
		return err
	}
	e.backend = backend

	ctx, err := renderer.NewContext(backend, e.cfg.Renderer.ContextConfig())
	if err != nil {
		return err
	}
	e.ctx = ctx

	width, height := e.platform.FramebufferSize()
	area := math.Rect2i{Width: int32(width), Height: int32(height)}
	e.ctx.SetWindowClientArea(area)
	e.ctx.SetViewport(area)
	e.platform.OnResize(func(w, h int) {
		resized := math.Rect2i{Width: int32(w), Height: int32(h)}
		e.ctx.SetWindowClientArea(resized)
		e.ctx.SetViewport(resized)
	})

	strategy, err := e.cfg.Renderer.MeshStrategy()
	if err != nil {
		return err
	}
	e.geometry, err = systems.NewGeometrySystem(systems.GeometrySystemConfig{DefaultStrategy: strategy})
	if err != nil {
		return err
	}

	if e.cfg.Assets.Watch {
		watcher, err := assets.NewWatcher(e.cfg.Assets.Dir)
		if err != nil {
			core.LogWarn("asset watching disabled: %v", err)
		} else {
			e.watcher = watcher
			watchCtx, cancel := context.WithCancel(context.Background())
			e.stopWatcher = cancel
			go watcher.Run(watchCtx)
		}
	}
	return nil
}

// Context returns the rendering context.
func (e *Engine) Context() *renderer.Context {
	return e.ctx
}

// Geometry returns the geometry system.
func (e *Engine) Geometry() *systems.GeometrySystem {
	return e.geometry
}

// Assets returns the asset watcher, or nil when watching is disabled.
func (e *Engine) Assets() *assets.Watcher {
	return e.watcher
}

// Run drives the frame loop until the window closes or the update
// callback fails.
func (e *Engine) Run(update UpdateFunc) error {
	e.clock.Start()
	last := 0.0
	for e.platform.PumpMessages() {
		e.clock.Update()
		now := e.clock.Elapsed()
		delta := now - last
		last = now

		e.ctx.ClearScreen(math.Color4f{R: 0.1, G: 0.1, B: 0.15, A: 1})
		if update != nil {
			if err := update(e.ctx, delta); err != nil {
				return err
			}
		}
		e.ctx.Flush()
		e.platform.SwapBuffers()

		e.metrics.Update(delta)
	}
	return nil
}

// FPS returns the rolling frames-per-second average.
func (e *Engine) FPS() float64 {
	return e.metrics.FPS()
}

// Shutdown tears the systems down in reverse startup order.
func (e *Engine) Shutdown() {
	if e.stopWatcher != nil {
		e.stopWatcher()
	}
	if e.watcher != nil {
		e.watcher.Close()
	}
	if e.geometry != nil {
		e.geometry.Shutdown()
	}
	if e.backend != nil {
		e.backend.Shutdown()
	}
	if e.platform != nil {
		e.platform.Shutdown()
	}
	core.LogInfo("%s stopped", e.cfg.AppName)
}
