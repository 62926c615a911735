package grove

import (
	"image"
	"io/fs"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws the registry from a camera. Render is called once at the
// end of every Stage.Frame; drawing may be deferred to the renderer's own
// draw callback.
type Renderer interface {
	Render(reg *Registry, cam *Camera)
	Resize(width, height int)
	SetPixelRatio(ratio float64)
}

// Surface is the window or canvas a Stage is shown on. Fullscreen toggling is
// a no-op when a Stage has no Surface.
type Surface interface {
	IsFullscreen() bool
	SetFullscreen(on bool)
	DevicePixelRatio() float64
}

// Stage is the context object that owns the registry, director, input
// dispatcher, camera and panel, and runs them in a fixed order every frame.
type Stage struct {
	Registry *Registry
	Director *Director
	Input    *Dispatcher
	Camera   *Camera
	Orbit    OrbitControl
	Panel    *Panel
	Textures *TextureLoader
	Config   Config

	// Primary is the object actions such as rain and fly-away act on.
	Primary Handle

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	renderer Renderer
	surface  Surface
	rng      *rand.Rand

	now           time.Duration
	frame         uint64
	width, height int

	mu    sync.Mutex
	queue []Command
	batch []Command

	debug           bool
	lastObjectCount int
	testRunner      *TestRunner
	injectQueue     []injectedEvent
	screenshotQueue []string
	home            map[Handle]mgl64.Vec3
}

// StageOption configures NewStage.
type StageOption func(*Stage)

// WithRenderer sets the renderer handed each frame.
func WithRenderer(r Renderer) StageOption {
	return func(s *Stage) { s.renderer = r }
}

// WithSurface sets the surface used for fullscreen and pixel ratio.
func WithSurface(surface Surface) StageOption {
	return func(s *Stage) { s.surface = surface }
}

// WithOrbit replaces the default DampedOrbit. Pass nil to disable orbiting.
func WithOrbit(o OrbitControl) StageOption {
	return func(s *Stage) { s.Orbit = o }
}

// WithRand sets the random source used for colors, jitter and sampling.
func WithRand(rng *rand.Rand) StageOption {
	return func(s *Stage) { s.rng = rng }
}

// WithTextureFS sets the file system textures are loaded from.
func WithTextureFS(fsys fs.FS) StageOption {
	return func(s *Stage) { s.Textures.FS = fsys }
}

// NewStage builds a stage from cfg. cfg is used as given; call
// Config.Validate first when it comes from user input.
func NewStage(cfg Config, opts ...StageOption) *Stage {
	reg := NewRegistry()
	s := &Stage{
		Registry:      reg,
		Director:      NewDirector(reg),
		Input:         NewDispatcher(),
		Camera:        NewCamera(float64(cfg.Window.Width) / float64(max(cfg.Window.Height, 1))),
		Panel:         NewPanel(cfg.Window.Title),
		Textures:      NewTextureLoader(nil),
		Config:        cfg,
		ScreenshotDir: "screenshots",
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
		home:          make(map[Handle]mgl64.Vec3),
	}

	s.Camera.FOV = cfg.Camera.FOV
	s.Camera.Near = cfg.Camera.Near
	s.Camera.Far = cfg.Camera.Far
	s.Camera.Position = vec3(cfg.Camera.Position)
	s.Camera.Target = vec3(cfg.Camera.Target)

	s.Input.ButtonFactor = cfg.Movement.ButtonFactor
	s.Input.KeyFactor = cfg.Movement.KeyFactor
	s.Input.Interval = cfg.Movement.RepeatInterval()

	orbit := NewDampedOrbit()
	orbit.EnableDamping = cfg.Orbit.Damping
	orbit.DampingFactor = cfg.Orbit.DampingFactor
	orbit.RotateSpeed = cfg.Orbit.RotateSpeed
	orbit.ZoomSpeed = cfg.Orbit.ZoomSpeed
	orbit.MinDistance = cfg.Orbit.MinDistance
	if cfg.Orbit.MaxDistance > 0 {
		orbit.MaxDistance = cfg.Orbit.MaxDistance
	}
	orbit.ViewportHeight = float64(cfg.Window.Height)
	s.Orbit = orbit

	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Scene.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s.Director.Reference = func() mgl64.Vec3 { return s.Camera.Position }
	s.Director.Settle = cfg.Scatter.Settle()
	s.Director.Settle.Rand = s.rng

	s.debug = cfg.Debug
	if s.renderer != nil {
		s.renderer.Resize(s.width, s.height)
		s.renderer.SetPixelRatio(s.pixelRatio())
	}
	return s
}

// Rand returns the stage's random source. Only use it from the frame goroutine.
func (s *Stage) Rand() *rand.Rand {
	return s.rng
}

// Renderer returns the renderer, or nil.
func (s *Stage) Renderer() Renderer {
	return s.renderer
}

// Now returns the stage clock: the sum of every dt passed to Frame.
func (s *Stage) Now() time.Duration {
	return s.now
}

// FrameCount returns the number of frames run.
func (s *Stage) FrameCount() uint64 {
	return s.frame
}

// Size returns the current surface size.
func (s *Stage) Size() (width, height int) {
	return s.width, s.height
}

// Enqueue queues cmd for the next frame. Safe for concurrent use.
func (s *Stage) Enqueue(cmd Command) {
	s.mu.Lock()
	s.queue = append(s.queue, cmd)
	s.mu.Unlock()
}

// Frame runs one frame:
//
//  1. scripted and injected events due this frame, then queued commands in
//     arrival order
//  2. input poll; movement deltas applied to the camera
//  3. camera move-to, spins and tweens advanced by dt
//  4. orbit control update
//  5. hand-off to the renderer
func (s *Stage) Frame(dt time.Duration) {
	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	stats.commandCount = s.processInjected(s.now + dt)
	stats.commandCount += s.drainCommands()
	s.now += dt
	s.frame++

	moves := s.Input.Poll(s.now)
	s.Camera.Translate(ApplyMovement(moves))
	stats.moveCount = len(moves)

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.Camera.update(dt)
	s.Director.Update(dt)

	if s.debug {
		stats.tweenTime = time.Since(t0)
		t0 = time.Now()
	}

	if s.Orbit != nil {
		s.Orbit.Update(s.Camera)
	}
	if s.renderer != nil {
		s.renderer.Render(s.Registry, s.Camera)
	}

	if s.debug {
		stats.renderTime = time.Since(t0)
		stats.objectCount = s.Registry.Len()
		stats.tweenCount = s.Director.Active()
		s.debugLog(stats)
	}
}

func (s *Stage) drainCommands() int {
	s.mu.Lock()
	s.batch, s.queue = s.queue, s.batch[:0]
	s.mu.Unlock()
	for i, cmd := range s.batch {
		cmd.Apply(s)
		s.batch[i] = nil
	}
	return len(s.batch)
}

// --- Event helpers (frame goroutine only: they read the stage clock) ---

// KeyDown queues a key press.
func (s *Stage) KeyDown(k ebiten.Key) { s.Enqueue(KeyDownCommand{Key: k}) }

// KeyUp queues a key release.
func (s *Stage) KeyUp(k ebiten.Key) { s.Enqueue(KeyUpCommand{Key: k}) }

// PressButton queues an on-screen button press stamped with the stage clock.
func (s *Stage) PressButton(dir Direction) {
	s.Enqueue(ButtonPressCommand{Direction: dir, At: s.now})
}

// ReleaseButton queues an on-screen button release stamped with the stage clock.
func (s *Stage) ReleaseButton(dir Direction) {
	s.Enqueue(ButtonReleaseCommand{Direction: dir, At: s.now})
}

// Resize queues a surface resize.
func (s *Stage) Resize(width, height int) {
	s.Enqueue(ResizeCommand{Width: width, Height: height})
}

// ToggleFullscreen queues a fullscreen toggle.
func (s *Stage) ToggleFullscreen() {
	s.Enqueue(FullscreenCommand{})
}

// Trigger queues a panel action.
func (s *Stage) Trigger(action string) {
	s.Enqueue(ActionCommand{Name: action})
}

// LoadTexture decodes name in the background and, on success, sets it as the
// texture of h's material. Failures are logged; the material is unchanged.
func (s *Stage) LoadTexture(h Handle, name string) {
	cb := LoggingCallbacks()
	logComplete := cb.OnComplete
	cb.OnComplete = func(name string, img image.Image) {
		logComplete(name, img)
		s.Enqueue(FuncCommand(func(s *Stage) {
			if obj, err := s.Registry.Get(h); err == nil {
				obj.Material.Texture = img
			}
		}))
	}
	s.Textures.Load(name, cb)
}

// --- Command targets ---

func (s *Stage) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.Camera.Resize(width, height)
	if o, ok := s.Orbit.(*DampedOrbit); ok {
		o.ViewportHeight = float64(height)
	}
	if s.renderer != nil {
		s.renderer.Resize(width, height)
		s.renderer.SetPixelRatio(s.pixelRatio())
	}
	Logger().Info("resize", "width", width, "height", height)
}

func (s *Stage) pixelRatio() float64 {
	ratio := 1.0
	if s.surface != nil {
		ratio = s.surface.DevicePixelRatio()
	}
	limit := s.Config.Window.MaxPixelRatio
	if limit <= 0 {
		limit = 2
	}
	return math.Min(ratio, limit)
}

func (s *Stage) toggleFullscreen() {
	if s.surface == nil {
		return
	}
	on := !s.surface.IsFullscreen()
	s.surface.SetFullscreen(on)
	Logger().Info("fullscreen", "on", on)
}

// SetTestRunner attaches a scripted input runner. Its step runs at the start
// of every Frame, before queued commands are applied.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}
