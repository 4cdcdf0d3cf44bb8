package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate reports every value Normalize would replace.
func (c BallfallConfig) Validate() []ValidationError {
	var errs []ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if c.Grid.Rows < 4 || c.Grid.Cols < 3 {
		add("GRID_SIZE", "grid %dx%d is too small (min 3 cols, 4 rows)", c.Grid.Cols, c.Grid.Rows)
	}
	if c.Cascade.MinMatchLength < 2 {
		add("MIN_MATCH", "min_match_length %d must be at least 2", c.Cascade.MinMatchLength)
	}
	if c.Cascade.MaxDepth <= 0 {
		add("MAX_DEPTH", "max_depth %d must be positive", c.Cascade.MaxDepth)
	}
	if c.Cascade.ExplosionRadius < 0 {
		add("EXPLOSION_RADIUS", "explosion_radius %d must not be negative", c.Cascade.ExplosionRadius)
	}
	if c.Scoring.BasePointsPerBall <= 0 {
		add("BASE_POINTS", "base_points_per_ball %d must be positive", c.Scoring.BasePointsPerBall)
	}
	if c.Scoring.CascadeBaseBonus < 0 {
		add("CASCADE_BONUS", "cascade_base_bonus %d must not be negative", c.Scoring.CascadeBaseBonus)
	}
	for i, m := range c.Scoring.DifficultyMultipliers.Array() {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			add("MULTIPLIER", "difficulty%d multiplier %v must be positive", i+1, m)
		}
	}
	if c.Factory.SpecialChance < 0 || c.Factory.SpecialChance > 1 {
		add("SPECIAL_CHANCE", "special_chance %v outside [0, 1]", c.Factory.SpecialChance)
	}
	if c.Factory.BlockingChance < 0 || c.Factory.BlockingChance > 1 {
		add("BLOCKING_CHANCE", "blocking_chance %v outside [0, 1]", c.Factory.BlockingChance)
	}
	for _, name := range c.Factory.Shapes {
		if _, ok := core.ParseShapeType(name); !ok {
			add("SHAPE", "unknown shape %q", name)
		}
	}
	if c.Levels.BallsPerLevel <= 0 {
		add("BALLS_PER_LEVEL", "balls_per_level %d must be positive", c.Levels.BallsPerLevel)
	}
	if c.Levels.Start < 1 || (c.Levels.Max > 0 && c.Levels.Start > c.Levels.Max) {
		add("START_LEVEL", "start level %d outside 1..%d", c.Levels.Start, c.Levels.Max)
	}
	if c.Timing.BaseFallTicks <= 0 || c.Timing.MinFallTicks <= 0 {
		add("FALL_TICKS", "fall ticks must be positive (base %d, min %d)", c.Timing.BaseFallTicks, c.Timing.MinFallTicks)
	}
	if c.Difficulty.Rank < core.MinDifficulty || c.Difficulty.Rank > core.MaxDifficulty {
		add("RANK", "difficulty rank %d outside 1..5", c.Difficulty.Rank)
	}
	switch c.Difficulty.Progression.Type {
	case "level", "time", "none":
	default:
		add("PROGRESSION", "unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return errs
}

// Normalize replaces missing or invalid values with defaults.
func (c BallfallConfig) Normalize() BallfallConfig {
	def := DefaultBallfallConfig()

	if c.Grid.Rows < 4 || c.Grid.Cols < 3 {
		c.Grid = def.Grid
	}

	engine := c.EngineConfig()
	c.Cascade = CascadeConfig{
		MinMatchLength:  engine.MinMatch,
		MaxDepth:        engine.MaxDepth,
		ExplosionRadius: engine.ExplosionRadius,
	}

	scoring := c.ScoringConfig()
	c.Scoring.BasePointsPerBall = scoring.BasePointsPerBall
	c.Scoring.CascadeBaseBonus = scoring.CascadeBaseBonus
	m := scoring.DifficultyMultipliers
	c.Scoring.DifficultyMultipliers = DifficultyMultipliers{m[0], m[1], m[2], m[3], m[4]}

	factory := c.FactoryConfig()
	c.Factory.SpecialChance = factory.SpecialChance
	c.Factory.BlockingChance = factory.BlockingChance
	c.Factory.MinPiecesBeforeBlocking = factory.MinPiecesBeforeBlocking
	c.Factory.Shapes = c.Factory.Shapes[:0:0]
	for _, s := range factory.Shapes {
		c.Factory.Shapes = append(c.Factory.Shapes, s.String())
	}

	if c.Levels.BallsPerLevel <= 0 {
		c.Levels.BallsPerLevel = def.Levels.BallsPerLevel
	}
	if c.Levels.Max <= 0 {
		c.Levels.Max = def.Levels.Max
	}
	if c.Levels.Start < 1 || c.Levels.Start > c.Levels.Max {
		c.Levels.Start = def.Levels.Start
	}

	if c.Timing.BaseFallTicks <= 0 {
		c.Timing.BaseFallTicks = def.Timing.BaseFallTicks
	}
	if c.Timing.MinFallTicks <= 0 {
		c.Timing.MinFallTicks = def.Timing.MinFallTicks
	}
	if c.Timing.MinFallTicks > c.Timing.BaseFallTicks {
		c.Timing.MinFallTicks = c.Timing.BaseFallTicks
	}
	if c.Timing.SoftDropTicks <= 0 {
		c.Timing.SoftDropTicks = def.Timing.SoftDropTicks
	}
	if c.Timing.LockDelay < 0 {
		c.Timing.LockDelay = def.Timing.LockDelay
	}
	if c.Timing.FlashTicks < 0 {
		c.Timing.FlashTicks = def.Timing.FlashTicks
	}

	c.Difficulty.Rank = core.ClampDifficulty(c.Difficulty.Rank)
	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
	switch c.Difficulty.Progression.Type {
	case "level", "time", "none":
	default:
		c.Difficulty.Progression.Type = def.Difficulty.Progression.Type
	}
	if c.Difficulty.Progression.MaxAt <= 0 {
		c.Difficulty.Progression.MaxAt = def.Difficulty.Progression.MaxAt
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		c.Difficulty.Scaling.SpeedMultiplier = def.Difficulty.Scaling.SpeedMultiplier
	}
	return c
}

// EngineConfig returns the cascade engine settings.
func (c BallfallConfig) EngineConfig() core.EngineConfig {
	return core.NewEngine(core.EngineConfig{
		MinMatch:        c.Cascade.MinMatchLength,
		MaxDepth:        c.Cascade.MaxDepth,
		ExplosionRadius: c.Cascade.ExplosionRadius,
	}).Config()
}

// ScoringConfig returns the normalized scoring constants.
func (c BallfallConfig) ScoringConfig() core.ScoringConfig {
	return core.ScoringConfig{
		BasePointsPerBall:     c.Scoring.BasePointsPerBall,
		CascadeBaseBonus:      c.Scoring.CascadeBaseBonus,
		DifficultyMultipliers: c.Scoring.DifficultyMultipliers.Array(),
	}.Normalize()
}

// FactoryConfig returns the normalized piece generation settings.
// Unknown shape names are skipped.
func (c BallfallConfig) FactoryConfig() core.FactoryConfig {
	var shapes []core.ShapeType
	for _, name := range c.Factory.Shapes {
		if t, ok := core.ParseShapeType(name); ok {
			shapes = append(shapes, t)
		}
	}
	return core.FactoryConfig{
		SpecialChance:           c.Factory.SpecialChance,
		BlockingChance:          c.Factory.BlockingChance,
		MinPiecesBeforeBlocking: c.Factory.MinPiecesBeforeBlocking,
		Shapes:                  shapes,
	}.Normalize()
}
