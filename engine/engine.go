package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

// Option customises an Engine before Initialize.
type Option func(*Engine)

// WithWindow uses w instead of creating a window from the configuration.
func WithWindow(w platform.Window) Option {
	return func(e *Engine) { e.window = w }
}

// WithRenderDevice uses dev instead of creating one for the configured API.
func WithRenderDevice(dev device.RenderDevice) Option {
	return func(e *Engine) { e.device = dev }
}

// WithClock drives the frame scheduler from c.
func WithClock(c *core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// Engine owns the window, the render device and the frame loop, and calls
// into the hosted Game.
type Engine struct {
	cfg          ApplicationConfig
	currentStage Stage
	game         Game

	context   *platform.Context
	window    platform.Window
	device    device.RenderDevice
	renderer  *renderer.Renderer
	assets    *assets.AssetManager
	jobs      *core.JobSystem
	scenes    *scene.Manager
	scheduler *core.FrameScheduler
	clock     *core.Clock
	input     *core.Input
	metrics   *core.Metrics

	gameReady   bool
	isRunning   atomic.Bool
	isSuspended bool
	focused     bool
	frames      uint64
	statsTimer  float64

	subscriptions []func()
}

func New(cfg ApplicationConfig, g Game, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, errors.New("engine needs a game")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = cfg.Name
	}
	if cfg.LogLevel != "" {
		if err := core.SetLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:          cfg,
		currentStage: EngineStageUninitialized,
		game:         g,
		input:        core.NewInput(),
		metrics:      core.NewMetrics(),
		focused:      true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = core.NewClock()
	}
	return e, nil
}

// Initialize brings up every subsystem and then the game. Any error is fatal;
// whatever was created before it is shut down again.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine initialized twice")
	}
	e.currentStage = EngineStageInitializing

	fb, err := e.initialize()
	if err != nil {
		return errors.Join(err, e.Shutdown())
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized (%dx%d)", e.cfg.Name, fb.Width, fb.Height)
	return nil
}

func (e *Engine) initialize() (platform.Size, error) {
	var fb platform.Size
	if e.window == nil {
		if e.cfg.Headless {
			e.window = platform.NewHeadlessWindow(e.cfg.Window)
		} else {
			ctx, err := platform.NewContext()
			if err != nil {
				return fb, err
			}
			w, err := ctx.CreateWindow(e.cfg.Window)
			if err != nil {
				ctx.Close()
				return fb, err
			}
			e.context, e.window = ctx, w
		}
	}
	e.focused = e.window.Focused()

	if e.device == nil {
		dev, err := renderer.NewRenderDevice(e.cfg.Renderer.API)
		if err != nil {
			return fb, err
		}
		e.device = dev
	}

	r, err := renderer.New(e.device, e.cfg.Renderer)
	if err != nil {
		return fb, err
	}
	e.renderer = r

	fb = e.window.FramebufferSize()
	e.device.SetViewport(0, 0, fb.Width, fb.Height)

	if e.scheduler, err = core.NewFrameScheduler(e.cfg.Scheduler, e.clock); err != nil {
		return fb, err
	}

	e.scenes = scene.NewManager(fb.Width, fb.Height)

	if e.jobs, err = core.NewJobSystem(e.cfg.JobWorkers, e.cfg.JobWorkers*4); err != nil {
		return fb, err
	}

	if e.cfg.AssetsDir != "" {
		am, err := assets.NewAssetManager()
		if err != nil {
			return fb, err
		}
		if err := am.Initialize(e.cfg.AssetsDir); err != nil {
			_ = am.Close()
			return fb, err
		}
		am.Changed.ConnectFunc(func(ev assets.AssetEvent) {
			core.LogDebug("asset %s %s", ev.Path, ev.Kind)
		})
		am.UseJobSystem(e.jobs)
		e.assets = am
	}

	e.connectWindow()

	if err := e.game.Initialize(e); err != nil {
		return fb, err
	}
	e.gameReady = true
	if rs, ok := e.game.(Resizer); ok {
		rs.OnResize(fb.Width, fb.Height)
	}
	return fb, nil
}

func (e *Engine) connectWindow() {
	ev := e.window.Events()

	closeSub := ev.Close.Connect(func(struct{}) bool {
		core.LogInfo("window closed, shutting down")
		e.isRunning.Store(false)
		return true
	})
	focusSub := ev.Focus.Connect(func(focused bool) bool {
		e.focused = focused
		if f, ok := e.game.(Focuser); ok {
			f.OnFocus(focused)
		}
		return true
	})
	fbSub := ev.Framebuffer.Connect(func(size platform.Size) bool {
		e.onFramebuffer(size)
		return true
	})
	keySub := ev.Key.ConnectFunc(func(k core.KeyEvent) {
		e.input.ProcessKey(k.Key, k.Pressed)
	})
	buttonSub := ev.MouseButton.ConnectFunc(func(m core.MouseEvent) {
		e.input.ProcessButton(m.Button, m.Pressed)
	})
	cursorSub := ev.Cursor.ConnectFunc(func(m core.MouseEvent) {
		e.input.ProcessMouseMove(m.X, m.Y)
	})
	scrollSub := ev.Scroll.ConnectFunc(func(m core.MouseEvent) {
		e.input.ProcessMouseWheel(m.ScrollX, m.ScrollY)
	})

	e.subscriptions = append(e.subscriptions,
		func() { ev.Close.Disconnect(closeSub) },
		func() { ev.Focus.Disconnect(focusSub) },
		func() { ev.Framebuffer.Disconnect(fbSub) },
		func() { ev.Key.Disconnect(keySub) },
		func() { ev.MouseButton.Disconnect(buttonSub) },
		func() { ev.Cursor.Disconnect(cursorSub) },
		func() { ev.Scroll.Disconnect(scrollSub) },
	)
}

func (e *Engine) onFramebuffer(size platform.Size) {
	// Handle minimization
	if size.Width == 0 || size.Height == 0 {
		if !e.isSuspended {
			core.LogInfo("window minimized, suspending application")
			e.isSuspended = true
		}
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}

	core.LogDebug("framebuffer resize: %d, %d", size.Width, size.Height)
	e.device.SetViewport(0, 0, size.Width, size.Height)
	e.scenes.Resize(size.Width, size.Height)
	if rs, ok := e.game.(Resizer); ok {
		rs.OnResize(size.Width, size.Height)
	}
}

// Run drives frames until Terminate is called or the window closes, then
// shuts the engine down.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before Run")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.scheduler.Reset()

	var runErr error
	for e.isRunning.Load() {
		if e.window.ShouldClose() {
			break
		}
		if err := e.Frame(); err != nil {
			core.LogError("frame failed, shutting down: %s", err.Error())
			runErr = err
			break
		}
	}

	return errors.Join(runErr, e.Shutdown())
}

// Frame runs one iteration of the loop: events, fixed steps, update, render
// and present. Simulation callbacks are skipped while the window is unfocused
// or minimised, but elapsed time is still consumed so no backlog builds up.
func (e *Engine) Frame() error {
	e.window.PollEvents()
	if e.window.ShouldClose() {
		e.isRunning.Store(false)
		return nil
	}
	if e.assets != nil {
		e.assets.DispatchChanges()
	}
	e.jobs.Update()

	active := e.focused && !e.isSuspended
	var fixed core.FixedStepFunc
	if active {
		fixed = e.fixedStep
	}
	delta, steps, alpha := e.scheduler.Tick(fixed)

	if active {
		if s := e.scenes.Current(); s != nil {
			s.Update(delta)
		}
		if err := e.game.Update(delta); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}

	e.renderer.ResetTotalStats()
	if !e.isSuspended {
		e.device.Clear()
		if s := e.scenes.Current(); s != nil {
			s.Render(e.renderer, alpha)
		}
		if err := e.game.Render(e.renderer, alpha); err != nil {
			return fmt.Errorf("game render: %w", err)
		}
		e.window.SwapBuffers()
	}

	e.metrics.Update(delta)
	e.logStats(delta, steps)

	// NOTE: input state is copied last so that everything recorded this
	// frame is visible as "previous" in the next one.
	e.input.Update()
	e.frames++
	return nil
}

func (e *Engine) fixedStep(fixedDelta float64) {
	if s := e.scenes.Current(); s != nil {
		s.FixedUpdate(fixedDelta)
	}
	if f, ok := e.game.(FixedUpdater); ok {
		f.FixedUpdate(fixedDelta)
	}
}

func (e *Engine) logStats(delta float64, steps int) {
	e.statsTimer += delta
	if e.statsTimer < 1.0 {
		return
	}
	e.statsTimer = 0
	stats := e.renderer.TotalStats()
	core.LogInfo("draw calls %d, quads %d, delta %.4f, fixed steps %d, fps %.1f",
		stats.DrawCalls, stats.QuadCount, delta, steps, e.metrics.FPS())
}

// Terminate stops the loop after the current frame. It is safe to call from
// any goroutine.
func (e *Engine) Terminate() {
	e.isRunning.Store(false)
}

// Shutdown releases every subsystem in reverse creation order.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if x, ok := e.game.(Exiter); ok && e.gameReady {
		errs = append(errs, x.OnExit())
	}
	for _, unsubscribe := range e.subscriptions {
		unsubscribe()
	}
	e.subscriptions = nil

	if e.scenes != nil {
		for _, name := range e.scenes.Names() {
			errs = append(errs, e.scenes.Remove(name))
		}
	}
	if e.assets != nil {
		errs = append(errs, e.assets.Close())
	}
	if e.jobs != nil {
		errs = append(errs, e.jobs.Shutdown())
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.device != nil {
		errs = append(errs, e.device.Close())
	}
	if e.window != nil {
		e.window.Destroy()
	}
	if e.context != nil {
		e.context.Close()
	}

	e.currentStage = EngineStageShutdown
	core.LogInfo("%s shut down after %d frames", e.cfg.Name, e.frames)
	return errors.Join(errs...)
}

func (e *Engine) Config() ApplicationConfig       { return e.cfg }
func (e *Engine) Stage() Stage                    { return e.currentStage }
func (e *Engine) Window() platform.Window         { return e.window }
func (e *Engine) Device() device.RenderDevice     { return e.device }
func (e *Engine) Renderer() *renderer.Renderer    { return e.renderer }
func (e *Engine) Scenes() *scene.Manager          { return e.scenes }
func (e *Engine) Assets() *assets.AssetManager    { return e.assets }
func (e *Engine) Jobs() *core.JobSystem           { return e.jobs }
func (e *Engine) Scheduler() *core.FrameScheduler { return e.scheduler }
func (e *Engine) Input() *core.Input              { return e.input }
func (e *Engine) Metrics() *core.Metrics          { return e.metrics }
func (e *Engine) Focused() bool                   { return e.focused }
func (e *Engine) Suspended() bool                 { return e.isSuspended }
func (e *Engine) Running() bool                   { return e.isRunning.Load() }
func (e *Engine) Frames() uint64                  { return e.frames }

// GetFramebufferSize returns the width and height (in this order) of the
// window framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	size := e.window.FramebufferSize()
	return size.Width, size.Height
}
