// Package main provides CMA-ES tuning of the match tactics parameters.
package main

import (
	"github.com/pthm-cable/kickoff/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Kicking forces
			{Name: "max_passing_force", Path: "team.max_passing_force", Min: 1.0, Max: 8.0, Default: 3.0},
			{Name: "max_shooting_force", Path: "team.max_shooting_force", Min: 2.0, Max: 12.0, Default: 6.0},
			{Name: "max_dribble_force", Path: "team.max_dribble_force", Min: 0.5, Max: 4.0, Default: 1.5},
			// Passing tactics
			{Name: "min_pass_distance", Path: "team.min_pass_distance", Min: 40.0, Max: 200.0, Default: 120.0},
			{Name: "pass_threat_radius", Path: "team.pass_threat_radius", Min: 40.0, Max: 180.0, Default: 70.0},
			{Name: "chance_request_pass", Path: "team.chance_request_pass", Min: 0.0, Max: 0.5, Default: 0.1},
			// Player decision making
			{Name: "comfort_zone", Path: "player.comfort_zone", Min: 30.0, Max: 120.0, Default: 60.0},
			{Name: "kick_frequency", Path: "player.kick_frequency", Min: 2.0, Max: 16.0, Default: 8.0},
			{Name: "kick_accuracy", Path: "player.kick_accuracy", Min: 0.8, Max: 1.0, Default: 0.99},
			{Name: "chance_of_pot_shot", Path: "player.chance_of_pot_shot", Min: 0.0, Max: 0.3, Default: 0.05},
			// Support spot scoring
			{Name: "pass_safe_score", Path: "support_spots.pass_safe_score", Min: 0.5, Max: 4.0, Default: 2.0},
			{Name: "can_score_score", Path: "support_spots.can_score_score", Min: 0.2, Max: 3.0, Default: 1.0},
			{Name: "dist_score", Path: "support_spots.dist_from_controlling_score", Min: 0.5, Max: 4.0, Default: 2.0},
			{Name: "optimal_distance", Path: "support_spots.optimal_distance", Min: 100.0, Max: 400.0, Default: 200.0},
			// Goalkeeping
			{Name: "keeper_tending_distance", Path: "goalkeeper.tending_distance", Min: 10.0, Max: 40.0, Default: 20.0},
			{Name: "keeper_intercept_range", Path: "goalkeeper.intercept_range", Min: 60.0, Max: 250.0, Default: 100.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// fields returns pointers to the config fields in Specs order.
func (pv *ParamVector) fields(cfg *config.Config) []*float64 {
	return []*float64{
		&cfg.Team.MaxPassingForce,
		&cfg.Team.MaxShootingForce,
		&cfg.Team.MaxDribbleForce,
		&cfg.Team.MinPassDistance,
		&cfg.Team.PassThreatRadius,
		&cfg.Team.ChanceRequestPass,
		&cfg.Player.ComfortZone,
		&cfg.Player.KickFrequency,
		&cfg.Player.KickAccuracy,
		&cfg.Player.ChanceOfPotShot,
		&cfg.SupportSpots.PassSafeScore,
		&cfg.SupportSpots.CanScoreScore,
		&cfg.SupportSpots.DistFromControllingScore,
		&cfg.SupportSpots.OptimalDistance,
		&cfg.GoalKeeper.TendingDistance,
		&cfg.GoalKeeper.InterceptRange,
	}
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, f := range pv.fields(cfg) {
		*f = clamped[i]
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	fields := pv.fields(cfg)
	out := make([]float64, len(fields))
	for i, f := range fields {
		out[i] = *f
	}
	return out
}
