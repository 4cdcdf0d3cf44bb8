// Package config provides YAML-based game configuration loading and
// difficulty management for Ballfall.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// BallfallConfig contains all configuration for the game.
type BallfallConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Factory    FactoryConfig    `yaml:"factory"`
	Levels     LevelConfig      `yaml:"levels"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the playfield dimensions.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// CascadeConfig defines match and cascade rules.
type CascadeConfig struct {
	MinMatchLength  int `yaml:"min_match_length"`
	MaxDepth        int `yaml:"max_depth"`
	ExplosionRadius int `yaml:"explosion_radius"`
}

// ScoringConfig defines the scoring constants.
type ScoringConfig struct {
	BasePointsPerBall     int                   `yaml:"base_points_per_ball"`
	CascadeBaseBonus      int                   `yaml:"cascade_base_bonus"`
	DifficultyMultipliers DifficultyMultipliers `yaml:"difficulty_multipliers"`
}

// DifficultyMultipliers maps difficulty 1..5 to a score multiplier.
type DifficultyMultipliers struct {
	Difficulty1 float64 `yaml:"difficulty1"`
	Difficulty2 float64 `yaml:"difficulty2"`
	Difficulty3 float64 `yaml:"difficulty3"`
	Difficulty4 float64 `yaml:"difficulty4"`
	Difficulty5 float64 `yaml:"difficulty5"`
}

// Array returns the multipliers indexed by difficulty-1.
func (m DifficultyMultipliers) Array() [5]float64 {
	return [5]float64{m.Difficulty1, m.Difficulty2, m.Difficulty3, m.Difficulty4, m.Difficulty5}
}

// FactoryConfig defines piece generation.
type FactoryConfig struct {
	SpecialChance           float64  `yaml:"special_chance"`
	BlockingChance          float64  `yaml:"blocking_chance"`
	MinPiecesBeforeBlocking int      `yaml:"min_pieces_before_blocking"`
	Shapes                  []string `yaml:"shapes"` // Empty = all shapes
}

// LevelConfig defines level progression.
type LevelConfig struct {
	Start         int `yaml:"start"`
	BallsPerLevel int `yaml:"balls_per_level"` // Cleared balls needed per level
	Max           int `yaml:"max"`
}

// TimingConfig defines tick-based timings (at 60 ticks per second).
type TimingConfig struct {
	BaseFallTicks int `yaml:"base_fall_ticks"` // Ticks per row at difficulty level 0
	MinFallTicks  int `yaml:"min_fall_ticks"`
	SoftDropTicks int `yaml:"soft_drop_ticks"`
	LockDelay     int `yaml:"lock_delay"` // Ticks a landed piece waits before locking
	FlashTicks    int `yaml:"flash_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	Rank         int               `yaml:"rank"`          // Scoring difficulty 1..5
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how fall speed increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Level/ticks at which max speed is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
	DifficultyInsane DifficultyPreset = "insane"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the ranked presets from easiest to hardest.
var Presets = []DifficultyPreset{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyExpert,
	DifficultyInsane,
}

// ParseDifficulty accepts a preset name or a rank "1".."5".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(Presets) {
			return "", fmt.Errorf("difficulty %d out of range 1..%d", n, len(Presets))
		}
		return Presets[n-1], nil
	}
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert, DifficultyInsane, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Rank returns the scoring difficulty 1..5 of a preset, 0 for fixed.
func (p DifficultyPreset) Rank() int {
	for i, preset := range Presets {
		if preset == p {
			return i + 1
		}
	}
	return 0
}

// PresetForRank returns the preset of a rank, clamped to 1..5.
func PresetForRank(rank int) DifficultyPreset {
	if rank < 1 {
		rank = 1
	}
	if rank > len(Presets) {
		rank = len(Presets)
	}
	return Presets[rank-1]
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.4
	case DifficultyExpert:
		return 0.6
	case DifficultyInsane:
		return 0.8
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
