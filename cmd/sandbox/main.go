// cmd/sandbox/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-tether/pkg/audio"
	"github.com/opd-ai/go-tether/pkg/config"
	"github.com/opd-ai/go-tether/pkg/engine"
	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/logging"
	"github.com/opd-ai/go-tether/pkg/render"
	engorender "github.com/opd-ai/go-tether/pkg/render/engo"
	"github.com/opd-ai/go-tether/pkg/trace"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (YAML or JSON)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	listPresets := flag.Bool("presets", false, "List configuration presets and exit")
	rendererName := flag.String("renderer", "", "Renderer: 'terminal', 'window' or 'null'")
	scene := flag.String("scene", "", "Initial scene (overrides config)")
	preset := flag.String("preset", "", "Configuration preset to apply")
	tracePath := flag.String("trace", "", "Record frames as JSON lines to this file")
	frames := flag.Int("frames", 0, "Stop after this many frames (null renderer only, 0 runs until interrupted)")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	noAudio := flag.Bool("mute", false, "Disable audio cues")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	if *listPresets {
		printPresets(os.Stdout)
		return
	}

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
		os.Exit(1)
	}
	overrideString(&envConfig.ConfigPath, *configPath)
	overrideString(&envConfig.Renderer, *rendererName)
	overrideString(&envConfig.Scene, *scene)
	overrideString(&envConfig.Preset, *preset)
	overrideString(&envConfig.TracePath, *tracePath)
	if *noAudio {
		envConfig.AudioEnabled = false
	}

	if *createDefault {
		if envConfig.ConfigPath == "" {
			logger.Error(ctx, "No configuration path given", nil, "flag", "-config")
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), envConfig.ConfigPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", envConfig.ConfigPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", envConfig.ConfigPath,
		)
		return
	}

	sandboxConfig, err := loadSandboxConfig(envConfig)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", envConfig.ConfigPath,
			"preset", envConfig.Preset,
		)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runLogger := logger
	if envConfig.Renderer == config.RendererTerminal && *logPath == "" {
		// tcell owns the terminal while the sandbox runs
		runLogger = logging.NewNopLogger()
	}

	a, err := newApp(ctx, envConfig, sandboxConfig, runLogger)
	if err != nil {
		logger.Error(ctx, "Failed to start", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Starting sandbox",
		"renderer", envConfig.Renderer,
		"scene", sandboxConfig.Scene,
		"tick_ms", sandboxConfig.TickMillis,
	)

	switch envConfig.Renderer {
	case config.RendererWindow:
		err = a.runWindow(ctx)
	case config.RendererNull:
		err = a.run(ctx, func(ctx context.Context) error { return a.runHeadless(ctx, *frames) })
	default:
		err = a.run(ctx, a.runTerminal)
	}
	a.close()

	if err != nil {
		logger.Error(ctx, "Sandbox failed", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Sandbox exited")
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func openLogger(path string) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.NewLogger(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLoggerTo(f), func() { _ = f.Close() }, nil
}

func printPresets(w io.Writer) {
	presets := config.ListPresets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-12s %s\n", name, presets[name])
	}
}

// loadSandboxConfig layers the sources: defaults, then the file, then the
// preset, then TETHER_* variables, then the scene flag.
func loadSandboxConfig(envConfig *config.EnvironmentConfig) (*config.SandboxConfig, error) {
	var (
		cfg *config.SandboxConfig
		err error
	)
	if envConfig.ConfigPath == "" {
		cfg = config.DefaultConfig()
		if envConfig.Preset != "" {
			err = config.ApplyPreset(cfg, envConfig.Preset)
		}
	} else {
		cfg, err = config.LoadConfigWithPreset(envConfig.ConfigPath, envConfig.Preset)
	}
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}
	if envConfig.Scene != "" {
		cfg.Scene = envConfig.Scene
	}
	return cfg, cfg.Validate()
}

// app carries what every frontend shares: the trace recorder and audio cues
type app struct {
	env      *config.EnvironmentConfig
	cfg      *config.SandboxConfig
	logger   *logging.Logger
	recorder *trace.Recorder
	traceOut io.Closer
	cues     *audio.Cues
}

func newApp(ctx context.Context, env *config.EnvironmentConfig, cfg *config.SandboxConfig, logger *logging.Logger) (*app, error) {
	a := &app{env: env, cfg: cfg, logger: logger, cues: audio.New(logger)}

	if env.TracePath != "" {
		f, err := os.Create(env.TracePath)
		if err != nil {
			return nil, fmt.Errorf("create trace file: %w", err)
		}
		a.traceOut = f
		a.recorder = trace.NewRecorder(f, trace.OptionsFromEnv(env), logger)
		logger.Info(ctx, "Recording trace", "path", env.TracePath, "trace_id", a.recorder.Session())
	}

	if env.AudioEnabled {
		if err := a.cues.Init(); err != nil {
			// Non-fatal, the sandbox runs without sound
			logger.Warn(ctx, "Audio initialization failed", "error", err)
		}
	}
	return a, nil
}

// newSandbox is the one place bodies are created, so every frontend gets the
// recorder and audio cues wired the same way.
func (a *app) newSandbox(r entity.Renderer) (*engine.Sandbox, error) {
	sb, err := engine.NewSandbox(a.cfg, r, a.logger)
	if err != nil {
		return nil, err
	}
	if a.recorder != nil {
		sb.Recorder = a.recorder
	}
	a.cues.Attach(sb.EventBus)
	return sb, nil
}

func (a *app) sceneSwitcher(ctx context.Context, sb *engine.Sandbox) func(int) {
	return func(index int) {
		if err := sb.SceneByIndex(index); err != nil {
			a.logger.Warn(ctx, "Scene key ignored", "index", index, "error", err)
		}
	}
}

// run drives loop and the trace writer together. When loop returns or ctx is
// cancelled, the recorder is given ShutdownTimeout to flush.
func (a *app) run(ctx context.Context, loop func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if a.recorder != nil {
		g.Go(func() error { return a.recorder.Run(gctx) })
	}
	stopped := make(chan struct{})
	g.Go(func() error {
		defer close(stopped)
		defer a.closeRecorder()
		return loop(gctx)
	})
	return a.wait(ctx, stopped, g.Wait)
}

// wait blocks on wait without a deadline until ctx is done or stopped is
// closed. Only the remaining shutdown is bounded by ShutdownTimeout.
func (a *app) wait(ctx context.Context, stopped <-chan struct{}, wait func() error) error {
	done := make(chan error, 1)
	go func() { done <- wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	case <-stopped:
	}

	timer := time.NewTimer(a.env.ShutdownTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errors.New("timed out waiting for shutdown")
	}
}

func (a *app) closeRecorder() {
	if a.recorder != nil {
		a.recorder.Close()
	}
}

func (a *app) close() {
	a.cues.Close()
	if a.traceOut != nil {
		_ = a.traceOut.Close()
		written, dropped := a.recorder.Stats()
		a.logger.Info(context.Background(), "Trace closed", "written", written, "dropped", dropped)
	}
}

func (a *app) runTerminal(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	r := render.NewTerminalRenderer(screen, a.env.CellWidth, a.env.CellHeight, a.logger)
	sb, err := a.newSandbox(r)
	if err != nil {
		return err
	}
	defer sb.Close()

	in := render.NewTerminalInput(input.NewTracker(a.cfg.LongPressThreshold()), r)
	in.OnScene = a.sceneSwitcher(ctx, sb)

	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go in.Listen(listenCtx, screen)

	return sb.Run(ctx, in, r)
}

func (a *app) runHeadless(ctx context.Context, frames int) error {
	if frames <= 0 {
		frames = math.MaxInt32
	}
	r := render.NewNullRenderer(a.logger)
	sb, err := a.newSandbox(r)
	if err != nil {
		return err
	}
	defer sb.Close()

	rest := a.cfg.Rope.Start
	src := input.NewScript(input.Step{Frames: frames, X: int(rest.X), Y: int(rest.Y)})
	if err := sb.Run(ctx, src, r); err != nil {
		return err
	}
	a.logger.Info(ctx, "Headless run finished", "frames", r.Frames(), "ticks", sb.CurrentTick)
	return nil
}

// runWindow hands the main goroutine to engo. The trace writer runs beside
// it and is flushed once the window closes.
func (a *app) runWindow(ctx context.Context) error {
	scene := engorender.NewSandboxScene(a.newSandbox, input.NewTracker(a.cfg.LongPressThreshold()), a.logger)

	g, gctx := errgroup.WithContext(ctx)
	if a.recorder != nil {
		g.Go(func() error { return a.recorder.Run(gctx) })
	}
	go func() {
		<-ctx.Done()
		engo.Exit()
	}()

	err := engorender.Run(a.cfg, scene)
	a.closeRecorder()
	stopped := make(chan struct{})
	close(stopped)
	if waitErr := a.wait(ctx, stopped, g.Wait); err == nil {
		err = waitErr
	}
	return err
}
