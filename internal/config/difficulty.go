package config

import "math"

// DifficultyManager calculates fall speed and level progression.
type DifficultyManager struct {
	cfg          DifficultyConfig
	levels       LevelConfig
	timing       TimingConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager from a normalized config.
func NewDifficultyManager(cfg BallfallConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg.Difficulty,
		levels:       cfg.Levels,
		timing:       cfg.Timing,
		initialLevel: cfg.Difficulty.InitialLevel,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Intensity returns the current difficulty (0.0 to 1.0) for a game level and tick count.
func (d *DifficultyManager) Intensity(level int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(level-1) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval returns the ticks between one-row drops of the falling piece.
func (d *DifficultyManager) FallInterval(level int, ticks int) int {
	intensity := d.Intensity(level, ticks)
	// Speed grows from 1x to (1 + speedMultiplier)x
	speed := 1.0 + intensity*d.cfg.Scaling.SpeedMultiplier
	interval := int(math.Round(float64(d.timing.BaseFallTicks) / speed))
	if interval < d.timing.MinFallTicks {
		interval = d.timing.MinFallTicks
	}
	if interval < 1 {
		interval = 1
	}
	return interval
}

// LevelFor returns the game level reached after clearing the given number of balls.
func (d *DifficultyManager) LevelFor(startLevel, ballsCleared int) int {
	per := d.levels.BallsPerLevel
	if per <= 0 {
		per = 1
	}
	level := startLevel + ballsCleared/per
	if d.levels.Max > 0 && level > d.levels.Max {
		level = d.levels.Max
	}
	return level
}

// BallsToNextLevel returns how many more balls are needed to level up,
// or 0 at the max level.
func (d *DifficultyManager) BallsToNextLevel(startLevel, ballsCleared int) int {
	if d.levels.Max > 0 && d.LevelFor(startLevel, ballsCleared) >= d.levels.Max {
		return 0
	}
	per := d.levels.BallsPerLevel
	if per <= 0 {
		per = 1
	}
	return per - ballsCleared%per
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
