package grove

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"github.com/tanema/gween/ease"
)

// Config holds every tunable of a Stage. The zero value is not useful; start
// from DefaultConfig and override, or load a TOML file with LoadConfig.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Orbit    OrbitConfig    `toml:"orbit"`
	Movement MovementConfig `toml:"movement"`
	Scene    SceneConfig    `toml:"scene"`
	Scatter  ScatterConfig  `toml:"scatter"`
	Debug    bool           `toml:"debug"`
}

// WindowConfig sizes the render surface.
type WindowConfig struct {
	Title         string  `toml:"title"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	MaxPixelRatio float64 `toml:"max_pixel_ratio"`
}

// CameraConfig places the perspective camera.
type CameraConfig struct {
	FOV      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
}

// OrbitConfig configures DampedOrbit.
type OrbitConfig struct {
	Damping       bool    `toml:"damping"`
	DampingFactor float64 `toml:"damping_factor"`
	RotateSpeed   float64 `toml:"rotate_speed"`
	ZoomSpeed     float64 `toml:"zoom_speed"`
	MinDistance   float64 `toml:"min_distance"`
	MaxDistance   float64 `toml:"max_distance"`
}

// MovementConfig holds the two independent move factors.
type MovementConfig struct {
	ButtonFactor     float64 `toml:"button_factor"`
	KeyFactor        float64 `toml:"key_factor"`
	RepeatIntervalMS int     `toml:"repeat_interval_ms"`
}

// SceneConfig describes the default demo content.
type SceneConfig struct {
	TriangleCount int        `toml:"triangle_count"`
	Spread        float64    `toml:"spread"`
	Spin          [3]float64 `toml:"spin"`
	Seed          uint64     `toml:"seed"`
}

// ScatterConfig drives the rain and drop actions.
type ScatterConfig struct {
	Count        int        `toml:"count"`
	Extent       [3]float64 `toml:"extent"`
	Offset       [3]float64 `toml:"offset"`
	FallDistance float64    `toml:"fall_distance"`
	Floor        float64    `toml:"floor"`
	DurationMin  float64    `toml:"duration_min"`
	DurationMax  float64    `toml:"duration_max"`
	Easing       string     `toml:"easing"`
}

// DefaultConfig returns the settings of the original point-cloud demo.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:         "grove",
			Width:         1280,
			Height:        720,
			MaxPixelRatio: 2,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float64{0, 1, 0},
		},
		Orbit: OrbitConfig{
			Damping:       true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
		},
		Movement: MovementConfig{
			ButtonFactor:     1,
			KeyFactor:        1,
			RepeatIntervalMS: 10,
		},
		Scene: SceneConfig{
			TriangleCount: 60,
			Spread:        4,
			Spin:          [3]float64{0.001, 0.002, 0.003},
		},
		Scatter: ScatterConfig{
			Count:        1000,
			Extent:       [3]float64{10, 2, 10},
			Offset:       [3]float64{0, 8, -5},
			FallDistance: 10,
			Floor:        -2,
			DurationMin:  1,
			DurationMax:  3,
			Easing:       "outBounce",
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML on top of DefaultConfig and validates the result.
// Keys that do not map to a field are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.MaxPixelRatio <= 0:
		return fmt.Errorf("config: max_pixel_ratio must be positive")
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("config: camera fov %v out of range (0, 180)", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("config: camera near/far %v/%v invalid", c.Camera.Near, c.Camera.Far)
	case c.Orbit.DampingFactor < 0 || c.Orbit.DampingFactor > 1:
		return fmt.Errorf("config: damping_factor %v out of range [0, 1]", c.Orbit.DampingFactor)
	case c.Movement.RepeatIntervalMS <= 0:
		return fmt.Errorf("config: repeat_interval_ms must be positive")
	case c.Scene.TriangleCount < 0:
		return fmt.Errorf("config: triangle_count must not be negative")
	case c.Scatter.Count < 0:
		return fmt.Errorf("config: scatter count must not be negative")
	case c.Scatter.DurationMax < c.Scatter.DurationMin:
		return fmt.Errorf("config: scatter duration_max < duration_min")
	}
	if _, ok := Easing(c.Scatter.Easing); !ok {
		return fmt.Errorf("config: unknown easing %q", c.Scatter.Easing)
	}
	return nil
}

// RepeatInterval returns the button repeat period.
func (c MovementConfig) RepeatInterval() time.Duration {
	return time.Duration(c.RepeatIntervalMS) * time.Millisecond
}

// Settle returns the SettleConfig described by the scatter section.
func (c ScatterConfig) Settle() SettleConfig {
	fn, ok := Easing(c.Easing)
	if !ok {
		fn = ease.OutBounce
	}
	return SettleConfig{
		FallDistance: c.FallDistance,
		Duration:     Range{Min: c.DurationMin, Max: c.DurationMax},
		Easing:       fn,
	}
}

func vec3(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}
