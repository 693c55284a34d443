// Package config loads engine tunables from a file and PLATFORMER_* env vars.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-platformer/camera"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/physics"
	"github.com/lixenwraith/vi-platformer/systems"
	"github.com/lixenwraith/vi-platformer/vmath"
)

const EnvPrefix = "PLATFORMER"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Physics   PhysicsConfig `mapstructure:"physics"`
	Camera    CameraConfig  `mapstructure:"camera"`
	Pools     PoolsConfig   `mapstructure:"pools"`
	Audio     AudioConfig   `mapstructure:"audio"`
	Debug     bool          `mapstructure:"debug"`
	TracePath string        `mapstructure:"trace_path"`
	LevelPath string        `mapstructure:"level_path"`
}

// PhysicsConfig values are pixels per frame (squared for accelerations)
type PhysicsConfig struct {
	Gravity          float64 `mapstructure:"gravity"`
	MaxFall          float64 `mapstructure:"max_fall"`
	Jump             float64 `mapstructure:"jump"`
	Accel            float64 `mapstructure:"accel"`
	Decel            float64 `mapstructure:"decel"`
	MaxRun           float64 `mapstructure:"max_run"`
	CoyoteFrames     int     `mapstructure:"coyote_frames"`
	JumpBufferFrames int     `mapstructure:"jump_buffer_frames"`
}

type CameraConfig struct {
	ScreenWidth    int     `mapstructure:"screen_width"`
	ScreenHeight   int     `mapstructure:"screen_height"`
	DeadzoneWidth  int     `mapstructure:"deadzone_width"`
	DeadzoneHeight int     `mapstructure:"deadzone_height"`
	Margin         int     `mapstructure:"margin"`
	Parallax       float64 `mapstructure:"parallax"`
}

type PoolsConfig struct {
	Entities int `mapstructure:"entities"`
	Bodies   int `mapstructure:"bodies"`
	Zones    int `mapstructure:"zones"`
	Timers   int `mapstructure:"timers"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("physics.gravity", parameter.GravityFloat)
	v.SetDefault("physics.max_fall", parameter.MaxFallSpeedFloat)
	v.SetDefault("physics.jump", parameter.JumpSpeedFloat)
	v.SetDefault("physics.accel", parameter.AccelerationFloat)
	v.SetDefault("physics.decel", parameter.DecelerationFloat)
	v.SetDefault("physics.max_run", parameter.MaxRunSpeedFloat)
	v.SetDefault("physics.coyote_frames", parameter.CoyoteFrames)
	v.SetDefault("physics.jump_buffer_frames", parameter.JumpBufferFrames)

	v.SetDefault("camera.screen_width", parameter.ScreenWidth)
	v.SetDefault("camera.screen_height", parameter.ScreenHeight)
	v.SetDefault("camera.deadzone_width", parameter.DeadzoneWidth)
	v.SetDefault("camera.deadzone_height", parameter.DeadzoneHeight)
	v.SetDefault("camera.margin", parameter.CameraMargin)
	v.SetDefault("camera.parallax", parameter.ParallaxFloat)

	v.SetDefault("pools.entities", parameter.MaxEntities)
	v.SetDefault("pools.bodies", parameter.MaxBodies)
	v.SetDefault("pools.zones", parameter.MaxBlockingZones)
	v.SetDefault("pools.timers", parameter.MaxTimers)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", parameter.AudioVolume)

	v.SetDefault("debug", false)
	v.SetDefault("trace_path", "")
	v.SetDefault("level_path", "")
}

// Load reads path when non-empty, overlays the environment and validates
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects sizes the engine cannot run with
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"pools.entities", c.Pools.Entities},
		{"pools.bodies", c.Pools.Bodies},
		{"pools.zones", c.Pools.Zones},
		{"pools.timers", c.Pools.Timers},
		{"camera.screen_width", c.Camera.ScreenWidth},
		{"camera.screen_height", c.Camera.ScreenHeight},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	if c.Physics.MaxFall <= 0 {
		return fmt.Errorf("%w: physics.max_fall must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Gravity:      vmath.FromFloat(c.Physics.Gravity),
		MaxFallSpeed: vmath.FromFloat(c.Physics.MaxFall),
	}
}

func (c *Config) PlayerParams() systems.PlayerParams {
	return systems.PlayerParams{
		Acceleration:     vmath.FromFloat(c.Physics.Accel),
		Deceleration:     vmath.FromFloat(c.Physics.Decel),
		MaxRunSpeed:      vmath.FromFloat(c.Physics.MaxRun),
		JumpSpeed:        vmath.FromFloat(c.Physics.Jump),
		CoyoteFrames:     c.Physics.CoyoteFrames,
		JumpBufferFrames: c.Physics.JumpBufferFrames,
	}
}

func (c *Config) CameraConfig() camera.Config {
	return camera.Config{
		ScreenWidth:    c.Camera.ScreenWidth,
		ScreenHeight:   c.Camera.ScreenHeight,
		DeadzoneWidth:  c.Camera.DeadzoneWidth,
		DeadzoneHeight: c.Camera.DeadzoneHeight,
		Margin:         c.Camera.Margin,
		Parallax:       vmath.FromFloat(c.Camera.Parallax),
	}
}

// WorldOptions sizes an engine world from the config
func (c *Config) WorldOptions() engine.Options {
	return engine.Options{
		Entities: c.Pools.Entities,
		Bodies:   c.Pools.Bodies,
		Zones:    c.Pools.Zones,
		Timers:   c.Pools.Timers,
		Camera:   c.CameraConfig(),
		Physics:  c.PhysicsParams(),
	}
}
