package polaroid

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is returned for configuration values that cannot produce
// a working scene.
var ErrInvalidConfig = errors.New("polaroid: invalid config")

// Config is the application configuration. Every field can be set from a
// POLAROID_* environment variable; cmd/polaroid layers flags on top.
type Config struct {
	Title  string `env:"POLAROID_TITLE"  envDefault:"Polaroid"`
	Width  int    `env:"POLAROID_WIDTH"  envDefault:"1280"`
	Height int    `env:"POLAROID_HEIGHT" envDefault:"720"`

	// PhotoCount limits the stack size. Zero uses every album photo.
	PhotoCount int     `env:"POLAROID_PHOTO_COUNT" envDefault:"0"`
	DepthStep  float32 `env:"POLAROID_DEPTH_STEP"  envDefault:"0.1"`

	ClickThreshold     float32       `env:"POLAROID_CLICK_THRESHOLD"     envDefault:"5"`
	LiftScale          float32       `env:"POLAROID_LIFT_SCALE"          envDefault:"1.05"`
	TransitionDuration time.Duration `env:"POLAROID_TRANSITION_DURATION" envDefault:"300ms"`
	RevealDelay        time.Duration `env:"POLAROID_REVEAL_DELAY"        envDefault:"2s"`
	RevealTopmostOnly  bool          `env:"POLAROID_REVEAL_TOPMOST_ONLY"`
	KeepGrabOffset     bool          `env:"POLAROID_KEEP_GRAB_OFFSET"`

	IdleSway      bool    `env:"POLAROID_IDLE_SWAY"`
	SwayAmplitude float32 `env:"POLAROID_SWAY_AMPLITUDE" envDefault:"0.03"`
	SwayFrequency float32 `env:"POLAROID_SWAY_FREQUENCY" envDefault:"0.25"`

	AlbumPath        string        `env:"POLAROID_ALBUM"`
	ShareURL         string        `env:"POLAROID_SHARE_URL"`
	FetchTimeout     time.Duration `env:"POLAROID_FETCH_TIMEOUT"     envDefault:"15s"`
	FetchConcurrency int           `env:"POLAROID_FETCH_CONCURRENCY" envDefault:"4"`
	TextureSize      int           `env:"POLAROID_TEXTURE_SIZE"      envDefault:"512"`

	ScriptPath    string `env:"POLAROID_SCRIPT"`
	ScreenshotDir string `env:"POLAROID_SCREENSHOT_DIR" envDefault:"screenshots"`

	Debug   bool `env:"POLAROID_DEBUG"`
	ShowFPS bool `env:"POLAROID_SHOW_FPS"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("polaroid: parse env: %w", err)
	}
	return cfg, nil
}

// ParseConfig reads the configuration from the given variables only. The
// process environment is ignored.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("polaroid: parse env: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration with every default applied.
func DefaultConfig() Config {
	cfg, err := ParseConfig(map[string]string{})
	if err != nil {
		panic(err) // defaults are constant
	}
	return cfg
}

// Validate checks that the configuration can build a scene.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.PhotoCount < 0:
		return fmt.Errorf("%w: photo count %d", ErrInvalidConfig, c.PhotoCount)
	case c.DepthStep < 0:
		return fmt.Errorf("%w: depth step %g", ErrInvalidConfig, c.DepthStep)
	case c.ClickThreshold <= 0:
		return fmt.Errorf("%w: click threshold %g", ErrInvalidConfig, c.ClickThreshold)
	case c.LiftScale <= 0:
		return fmt.Errorf("%w: lift scale %g", ErrInvalidConfig, c.LiftScale)
	case c.TransitionDuration < 0:
		return fmt.Errorf("%w: transition duration %v", ErrInvalidConfig, c.TransitionDuration)
	case c.RevealDelay <= 0:
		return fmt.Errorf("%w: reveal delay %v", ErrInvalidConfig, c.RevealDelay)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("%w: fetch concurrency %d", ErrInvalidConfig, c.FetchConcurrency)
	case c.TextureSize <= 0:
		return fmt.Errorf("%w: texture size %d", ErrInvalidConfig, c.TextureSize)
	}
	return nil
}

// stackConfig derives the stack geometry for count photos.
func (c Config) stackConfig(count int) StackConfig {
	sc := DefaultStackConfig()
	sc.Count = count
	sc.DepthStep = c.DepthStep
	return sc
}

// interactionConfig derives the drag controller settings.
func (c Config) interactionConfig() InteractionConfig {
	return InteractionConfig{
		ClickThreshold:     c.ClickThreshold,
		LiftScale:          c.LiftScale,
		TransitionDuration: float32(c.TransitionDuration.Seconds()),
		Ease:               DefaultEase,
		RevealTopmostOnly:  c.RevealTopmostOnly,
		KeepGrabOffset:     c.KeepGrabOffset,
	}
}

func (c Config) swayConfig() SwayConfig {
	return SwayConfig{
		Enabled:   c.IdleSway,
		Amplitude: c.SwayAmplitude,
		Frequency: c.SwayFrequency,
	}
}
