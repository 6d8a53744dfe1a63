package main

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/vetro/engine"
	"github.com/spaghettifunk/vetro/engine/assets"
	"github.com/spaghettifunk/vetro/engine/config"
	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		core.LogFatal("loading configuration: %v", err)
	}

	app, err := engine.New(cfg)
	if err != nil {
		core.LogFatal("creating engine: %v", err)
	}
	if err := app.Startup(); err != nil {
		core.LogFatal("starting engine: %v", err)
	}
	defer app.Shutdown()

	var model *mesh.Mesh
	modelPath := filepath.Join(cfg.Assets.Dir, "demo.obj")
	if _, err := os.Stat(modelPath); err == nil {
		model, err = assets.LoadMeshOBJ(modelPath)
		if err != nil {
			core.LogFatal("loading demo mesh: %v", err)
		}
		strategy, err := cfg.Renderer.MeshStrategy()
		if err != nil {
			core.LogFatal("%v", err)
		}
		model.SetStrategy(strategy)
		if bb, err := model.BoundingBox(); err == nil {
			core.LogInfo("demo mesh bounds: min=%+v max=%+v", bb.Min, bb.Max)
		}
	}

	if watcher := app.Assets(); watcher != nil && model != nil {
		watcher.OnChange(".obj", func(path string) {
			if path != modelPath {
				return
			}
			core.LogInfo("demo mesh changed on disk, scheduling re-upload")
			model.Vertices.MarkChanged()
			model.Indices.MarkChanged()
		})
	}

	angle := 0.0
	err = app.Run(func(ctx *renderer.Context, deltaTime float64) error {
		angle += deltaTime

		area := ctx.WindowClientArea()
		aspect := float32(1)
		if area.Height > 0 {
			aspect = float32(area.Width) / float32(area.Height)
		}
		ctx.SetProjectionMatrix(math.NewMat4Perspective(60*math.Deg2Rad, aspect, 0.1, 100))
		ctx.SetViewMatrix(math.NewMat4LookAt(math.Vec3{Z: 3}, math.Vec3{}, math.Vec3{Y: 1}))

		if model != nil {
			ctx.PushAndSetModelMatrix(math.NewMat4EulerY(float32(angle)))
			err := model.Display(ctx)
			ctx.PopModelMatrix()
			return err
		}
		return nil
	})
	if err != nil {
		core.LogError("frame loop aborted: %v", err)
	}
	core.LogInfo("average fps: %.1f", app.FPS())
}
