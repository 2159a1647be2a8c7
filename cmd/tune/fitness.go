package main

import (
	"math"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/game"
	"github.com/pthm-cable/kickoff/telemetry"
)

// FitnessEvaluator runs headless matches and scores how lively the
// resulting play is.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int32
	seeds    []int64

	bestFitness float64
	lastScore   float64 // liveliness from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		bestFitness: math.Inf(1),
	}
}

// LastScore returns the liveliness score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	return fe.lastScore
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Parameters live in the process-wide config, so seeds run sequentially
// and the optimizer must use Concurrent: 0.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fe.params.ApplyToConfig(config.Cfg(), x)

	var total float64
	for _, seed := range fe.seeds {
		total += fe.runMatch(seed)
	}

	score := total / float64(len(fe.seeds))
	fe.lastScore = score

	fitness := -score
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	return fitness
}

// runMatch executes a single headless match and returns its liveliness.
func (fe *FitnessEvaluator) runMatch(seed int64) float64 {
	var windows []telemetry.WindowStats

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: 10.0,
		StepsPerUpdate: 100,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return liveliness(windows, config.Cfg().Physics.DT)
}

// Liveliness component weights and per-minute targets. The targets
// describe an end-to-end match: a goal every couple of minutes, regular
// shots, constant passing, neither side dominating the ball.
const (
	weightGoals   = 0.35
	weightShots   = 0.25
	weightPasses  = 0.25
	weightBalance = 0.15

	targetGoalsPerMin  = 0.5
	targetShotsPerMin  = 3.0
	targetPassesPerMin = 15.0
)

// liveliness scores a match in [0, 1] from its window stats.
func liveliness(windows []telemetry.WindowStats, dt float64) float64 {
	if len(windows) == 0 {
		return 0
	}

	var goals, shots, passes int
	var balanceSum float64
	for _, w := range windows {
		goals += w.RedGoals + w.BlueGoals
		shots += w.RedShots + w.BlueShots
		passes += w.RedPasses + w.BluePasses
		balanceSum += 1.0 - math.Abs(w.RedPossession-w.BluePossession)
	}

	last := windows[len(windows)-1]
	minutes := float64(last.WindowEndTick) * dt / 60.0
	if minutes <= 0 {
		return 0
	}

	goalScore := targetScore(float64(goals)/minutes, targetGoalsPerMin)
	shotScore := targetScore(float64(shots)/minutes, targetShotsPerMin)
	passScore := targetScore(float64(passes)/minutes, targetPassesPerMin)
	balanceScore := balanceSum / float64(len(windows))

	return clamp01(weightGoals*goalScore +
		weightShots*shotScore +
		weightPasses*passScore +
		weightBalance*balanceScore)
}

// targetScore peaks at 1 when rate hits the target and falls off as a
// Gaussian on the relative error, so overshooting is penalized like
// undershooting.
func targetScore(rate, target float64) float64 {
	err := (rate - target) / target
	return math.Exp(-err * err)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
