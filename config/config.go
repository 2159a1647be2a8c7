// Package config provides configuration loading and access for the
// match simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Pitch        PitchConfig        `yaml:"pitch"`
	Ball         BallConfig         `yaml:"ball"`
	Player       PlayerConfig       `yaml:"player"`
	GoalKeeper   GoalKeeperConfig   `yaml:"goalkeeper"`
	Team         TeamConfig         `yaml:"team"`
	SupportSpots SupportSpotsConfig `yaml:"support_spots"`
	Steering     SteeringConfig     `yaml:"steering"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds tick parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per simulation tick
}

// PitchConfig holds the playing-area layout.
type PitchConfig struct {
	Margin      float64 `yaml:"margin"`        // inset of the playing area from the window edge
	NumRegionsX int     `yaml:"num_regions_x"` // region grid columns
	NumRegionsY int     `yaml:"num_regions_y"` // region grid rows
	GoalWidth   float64 `yaml:"goal_width"`
}

// BallConfig holds ball physics parameters.
type BallConfig struct {
	Size     float64 `yaml:"size"` // radius
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"` // negative deceleration per tick
}

// PlayerConfig holds field-player parameters.
type PlayerConfig struct {
	Mass                float64 `yaml:"mass"`
	MaxForce            float64 `yaml:"max_force"`
	MaxSpeedWithBall    float64 `yaml:"max_speed_with_ball"`
	MaxSpeedWithoutBall float64 `yaml:"max_speed_without_ball"`
	MaxTurnRate         float64 `yaml:"max_turn_rate"`
	BoundingRadius      float64 `yaml:"bounding_radius"`

	ComfortZone     float64 `yaml:"comfort_zone"`     // threat radius while controlling the ball
	KickingDistance float64 `yaml:"kicking_distance"` // added to ball+player radii
	KickFrequency   float64 `yaml:"kick_frequency"`   // max kicks per second
	KickAccuracy    float64 `yaml:"kick_accuracy"`    // 1.0 = perfect
	ViewDistance    float64 `yaml:"view_distance"`    // flocking neighbor radius
	ReceivingRange  float64 `yaml:"receiving_range"`  // ball close enough to trap on receive
	HomeRange       float64 `yaml:"home_range"`       // close enough to home region center
	SupportRange    float64 `yaml:"support_range"`    // close enough to the support spot

	NumAttemptsToFindValidStrike int     `yaml:"num_attempts_to_find_valid_strike"`
	ChanceOfPotShot              float64 `yaml:"chance_of_pot_shot"`
	ChanceOfArriveReceive        float64 `yaml:"chance_of_arrive_receive"`
}

// GoalKeeperConfig holds keeper parameters.
type GoalKeeperConfig struct {
	InBallRange     float64 `yaml:"in_ball_range"`    // trap distance
	InterceptRange  float64 `yaml:"intercept_range"`  // leave goal mouth inside this
	TendingDistance float64 `yaml:"tending_distance"` // distance kept from the goal mouth
	MinPassDistance float64 `yaml:"min_pass_distance"`
}

// TeamConfig holds tactical parameters.
type TeamConfig struct {
	MaxPassingForce   float64 `yaml:"max_passing_force"`
	MaxShootingForce  float64 `yaml:"max_shooting_force"`
	MaxDribbleForce   float64 `yaml:"max_dribble_force"`
	MinPassDistance   float64 `yaml:"min_pass_distance"`
	PassThreatRadius  float64 `yaml:"pass_threat_radius"`
	ChanceRequestPass float64 `yaml:"chance_request_pass"`
}

// SupportSpotsConfig holds the supporting-spot scorer parameters.
type SupportSpotsConfig struct {
	NumX                     int     `yaml:"num_x"`
	NumY                     int     `yaml:"num_y"`
	UpdateFreq               float64 `yaml:"update_freq"` // recomputations per second
	PassSafeScore            float64 `yaml:"pass_safe_score"`
	CanScoreScore            float64 `yaml:"can_score_score"`
	DistFromControllingScore float64 `yaml:"dist_from_controlling_score"`
	OptimalDistance          float64 `yaml:"optimal_distance"`
}

// SteeringConfig holds the per-player steering weights that differ from
// the engine defaults.
type SteeringConfig struct {
	SeparationCoefficient float64 `yaml:"separation_coefficient"`
	WanderJitter          float64 `yaml:"wander_jitter"`
	WanderRadius          float64 `yaml:"wander_radius"`
	WanderDistance        float64 `yaml:"wander_distance"`
	FeelerLength          float64 `yaml:"feeler_length"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

var cfg *Config

// Init loads defaults and, when path is non-empty, overlays the file on
// top of them. Must be called before Cfg.
func Init(path string) error {
	c := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, c); err != nil {
		return fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Cfg returns the loaded configuration. Init must have been called.
func Cfg() *Config {
	if cfg == nil {
		panic("config: Cfg called before Init")
	}
	return cfg
}

// Validate checks parameter sanity.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Ball.Friction >= 0 {
		return fmt.Errorf("ball.friction must be negative, got %v", c.Ball.Friction)
	}
	if c.Pitch.NumRegionsX < 2 || c.Pitch.NumRegionsY < 1 {
		return fmt.Errorf("pitch region grid %dx%d too small",
			c.Pitch.NumRegionsX, c.Pitch.NumRegionsY)
	}
	if c.Player.KickAccuracy < 0 || c.Player.KickAccuracy > 1 {
		return fmt.Errorf("player.kick_accuracy must be in [0,1], got %v",
			c.Player.KickAccuracy)
	}
	// Only the columns strictly inside the opponent half carry spots, so
	// fewer than four columns would leave the grid empty.
	if c.SupportSpots.NumX < 4 || c.SupportSpots.NumY < 1 {
		return fmt.Errorf("support spot grid %dx%d too small",
			c.SupportSpots.NumX, c.SupportSpots.NumY)
	}
	return nil
}

// WriteYAML saves the configuration, used for per-run snapshots.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy, used by the tuner to vary parameters
// without touching the shared config.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}
