package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Clock kinds for SceneConfig.Clock.
const (
	ClockFixed    = "fixed"
	ClockMeasured = "measured"
)

// Hit index kinds for SceneConfig.HitIndex.
const (
	IndexLinear = "linear"
	IndexGrid   = "grid"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// SceneConfig tunes the galaxy view.
type SceneConfig struct {
	FPS               int     `mapstructure:"fps"`
	Clock             string  `mapstructure:"clock"`
	Step              float64 `mapstructure:"step"`
	BackgroundStars   int     `mapstructure:"background_stars"`
	Seed              int64   `mapstructure:"seed"`
	MinDistance       float64 `mapstructure:"min_distance"`
	PlacementAttempts int     `mapstructure:"placement_attempts"`
	SizeScale         float64 `mapstructure:"size_scale"`
	HitPadding        float64 `mapstructure:"hit_padding"`
	HitIndex          string  `mapstructure:"hit_index"`
}

// ServerConfig holds settings for `starfield serve`.
type ServerConfig struct {
	Addr        string        `mapstructure:"addr"`
	Secret      string        `mapstructure:"secret"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// BreakerConfig configures the client's circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

// ClientConfig holds settings for the HTTP backend client.
type ClientConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// Config holds all runtime configuration for a starfield session.
// Values are populated from .starfield.yaml, STARFIELD_* env vars, and CLI flags.
type Config struct {
	APIURL      string       `mapstructure:"api_url"`
	Token       string       `mapstructure:"token"`
	DBPath      string       `mapstructure:"db_path"`
	LogFile     string       `mapstructure:"log_file"`
	JournalPath string       `mapstructure:"journal_path"`
	PalettePath string       `mapstructure:"palette_path"`
	Verbose     bool         `mapstructure:"verbose"`
	Scene       SceneConfig  `mapstructure:"scene"`
	Server      ServerConfig `mapstructure:"server"`
	Client      ClientConfig `mapstructure:"client"`
}

// Remote reports whether the HTTP API backend is selected.
func (c Config) Remote() bool { return c.APIURL != "" }

// Dir returns the per-user state directory (~/.starfield), or .starfield in
// the working directory when no home directory is available.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".starfield"
	}
	return filepath.Join(home, ".starfield")
}

// SetDefaults registers built-in defaults with viper.
func SetDefaults() {
	dir := Dir()
	viper.SetDefault("api_url", "")
	viper.SetDefault("token", "")
	viper.SetDefault("db_path", filepath.Join(dir, "galaxy.db"))
	viper.SetDefault("log_file", filepath.Join(dir, "starfield.log"))
	viper.SetDefault("journal_path", filepath.Join(dir, "events.jsonl"))
	viper.SetDefault("palette_path", "")
	viper.SetDefault("verbose", false)

	viper.SetDefault("scene.fps", 60)
	viper.SetDefault("scene.clock", ClockFixed)
	viper.SetDefault("scene.step", 0.016)
	viper.SetDefault("scene.background_stars", 200)
	viper.SetDefault("scene.seed", 0)
	viper.SetDefault("scene.min_distance", 0.10)
	viper.SetDefault("scene.placement_attempts", 50)
	viper.SetDefault("scene.size_scale", 0.35)
	viper.SetDefault("scene.hit_padding", 4.0)
	viper.SetDefault("scene.hit_index", IndexLinear)

	viper.SetDefault("server.addr", ":8420")
	viper.SetDefault("server.secret", "")
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("server.timeout", 10*time.Second)

	viper.SetDefault("client.timeout", 10*time.Second)
	viper.SetDefault("client.breaker.max_requests", 5)
	viper.SetDefault("client.breaker.interval", 30*time.Second)
	viper.SetDefault("client.breaker.timeout", 60*time.Second)
	viper.SetDefault("client.breaker.failure_ratio", 0.8)
	viper.SetDefault("client.breaker.min_requests", 5)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags, and validates it.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the scene cannot run with.
func Validate(cfg Config) error {
	s := cfg.Scene
	var problems []string
	if s.FPS <= 0 {
		problems = append(problems, fmt.Sprintf("scene.fps must be positive, got %d", s.FPS))
	}
	if s.Clock != ClockFixed && s.Clock != ClockMeasured {
		problems = append(problems, fmt.Sprintf("scene.clock must be %q or %q, got %q", ClockFixed, ClockMeasured, s.Clock))
	}
	if s.HitIndex != IndexLinear && s.HitIndex != IndexGrid {
		problems = append(problems, fmt.Sprintf("scene.hit_index must be %q or %q, got %q", IndexLinear, IndexGrid, s.HitIndex))
	}
	if s.MinDistance <= 0 || s.MinDistance >= 1 {
		problems = append(problems, fmt.Sprintf("scene.min_distance must be in (0,1), got %v", s.MinDistance))
	}
	if s.PlacementAttempts < 1 {
		problems = append(problems, fmt.Sprintf("scene.placement_attempts must be at least 1, got %d", s.PlacementAttempts))
	}
	if s.Clock == ClockFixed && s.Step <= 0 {
		problems = append(problems, fmt.Sprintf("scene.step must be positive, got %v", s.Step))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}

// Watch reloads the configuration whenever the config file changes and
// passes every valid result to onChange. Invalid edits are reported to
// onError and otherwise ignored.
func Watch(onChange func(Config), onError func(error)) {
	viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
}
