package telemetry

// WindowStats is one row of match telemetry, covering a single stats
// window. Field tags drive the gocsv output.
type WindowStats struct {
	WindowStartTick int32   `csv:"window_start_tick"`
	WindowEndTick   int32   `csv:"window_end_tick"`
	SimTimeSec      float64 `csv:"sim_time_sec"`

	RedPossession  float64 `csv:"red_possession"`
	BluePossession float64 `csv:"blue_possession"`

	RedPasses  int `csv:"red_passes"`
	BluePasses int `csv:"blue_passes"`
	RedShots   int `csv:"red_shots"`
	BlueShots  int `csv:"blue_shots"`
	RedGoals   int `csv:"red_goals"`
	BlueGoals  int `csv:"blue_goals"`

	ScoreRed  int `csv:"score_red"`
	ScoreBlue int `csv:"score_blue"`
}

// PossessionShares converts tick counts into possession fractions of
// the window. Contested ticks count toward the denominator, so the two
// shares only sum to 1 when the ball was never loose.
func PossessionShares(redTicks, blueTicks, contestedTicks int) (red, blue float64) {
	total := redTicks + blueTicks + contestedTicks
	if total == 0 {
		return 0, 0
	}
	return float64(redTicks) / float64(total), float64(blueTicks) / float64(total)
}
