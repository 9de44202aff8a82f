// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tether/pkg/config"
	"github.com/opd-ai/go-tether/pkg/engine"
	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/logging"
)

// Background is the window clear colour
var Background = color.RGBA{10, 10, 10, 255}

// Builder creates the sandbox once the GL context exists and textures can be
// uploaded
type Builder func(r entity.Renderer) (*engine.Sandbox, error)

// SandboxSystem steps the sandbox once per engo frame
type SandboxSystem struct {
	sandbox  *engine.Sandbox
	source   input.Source
	renderer entity.Renderer
	quit     func()
}

// Update satisfies the ecs.System interface
func (s *SandboxSystem) Update(dt float32) {
	if !s.sandbox.Step(s.source, s.renderer) {
		s.quit()
	}
}

// Remove satisfies the ecs.System interface
func (s *SandboxSystem) Remove(basic ecs.BasicEntity) {}

// SandboxScene is the engo scene hosting the sandbox
type SandboxScene struct {
	build   Builder
	tracker *input.Tracker
	logger  *logging.Logger

	sandbox  *engine.Sandbox
	renderer *EngoRenderer
	hud      *HUDSystem
	err      error
}

// NewSandboxScene creates a scene that builds its sandbox with build
func NewSandboxScene(build Builder, tracker *input.Tracker, logger *logging.Logger) *SandboxScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SandboxScene{
		build:   build,
		tracker: tracker,
		logger:  logger.Component("engo"),
	}
}

// Type returns the scene type (required by Engo)
func (scene *SandboxScene) Type() string {
	return "SandboxScene"
}

// Preload is called before the scene starts (required by Engo). Textures are
// decoded from the bundled assets in Setup instead.
func (scene *SandboxScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SandboxScene) Setup(u engo.Updater) {
	ctx := context.Background()
	world, _ := u.(*ecs.World)

	common.SetBackground(Background)
	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	SetupInputBindings()

	assets := NewAssetManager()
	scene.renderer = NewEngoRenderer(renderSystem, assets)

	sb, err := scene.build(scene.renderer)
	if err != nil {
		scene.err = err
		scene.logger.Error(ctx, "failed to create sandbox", err)
		engo.Exit()
		return
	}
	scene.sandbox = sb

	source := NewInputSource(scene.tracker)
	source.OnScene = func(index int) {
		if err := sb.SceneByIndex(index); err != nil {
			scene.logger.Warn(ctx, "scene key ignored", "index", index, "error", err)
		}
	}

	scene.hud = NewHUDSystem(sb.Scene())
	scene.hud.Attach(sb.EventBus)
	if font, err := assets.LoadFont(14, color.White); err != nil {
		scene.logger.Warn(ctx, "HUD disabled", "error", err)
	} else {
		scene.hud.SetFont(font)
		scene.hud.Place(renderSystem)
	}

	world.AddSystem(&SandboxSystem{
		sandbox:  sb,
		source:   source,
		renderer: scene.renderer,
		quit:     engo.Exit,
	})
	world.AddSystem(scene.hud)

	sb.Start(ctx)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SandboxScene) Exit() {
	if scene.sandbox == nil {
		return
	}
	scene.sandbox.Stop(context.Background())
	scene.hud.Detach()
	scene.sandbox.Close()
	scene.renderer.Close()
}

// Err returns the error that aborted Setup, if any
func (scene *SandboxScene) Err() error {
	return scene.err
}

// Run opens the window and blocks until it is closed
func Run(cfg *config.SandboxConfig, scene *SandboxScene) error {
	fps := int(time.Second / cfg.TickInterval())
	engo.Run(engo.RunOptions{
		Title:    cfg.Window.Title,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		VSync:    true,
		FPSLimit: fps,
	}, scene)
	return scene.Err()
}
