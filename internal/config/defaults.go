package config

import (
	_ "embed"
)

//go:embed defaults/ballfall.yaml
var defaultBallfallYAML []byte

// DefaultBallfallConfig returns the default game configuration.
func DefaultBallfallConfig() BallfallConfig {
	return BallfallConfig{
		Grid: GridConfig{
			Rows: 25,
			Cols: 15,
		},
		Cascade: CascadeConfig{
			MinMatchLength:  3,
			MaxDepth:        10,
			ExplosionRadius: 3,
		},
		Scoring: ScoringConfig{
			BasePointsPerBall: 1,
			CascadeBaseBonus:  3,
			DifficultyMultipliers: DifficultyMultipliers{
				Difficulty1: 1.0,
				Difficulty2: 1.5,
				Difficulty3: 2.0,
				Difficulty4: 2.5,
				Difficulty5: 3.0,
			},
		},
		Factory: FactoryConfig{
			SpecialChance:           0.04,
			BlockingChance:          0.08,
			MinPiecesBeforeBlocking: 20,
		},
		Levels: LevelConfig{
			Start:         1,
			BallsPerLevel: 30,
			Max:           30,
		},
		Timing: TimingConfig{
			BaseFallTicks: 40, // 1.5 rows per second at 60fps
			MinFallTicks:  4,
			SoftDropTicks: 2,
			LockDelay:     15,
			FlashTicks:    12,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			Rank:         1,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBallfallYAML
}
