package core

import "math"

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ScoringConfig holds the scoring constants.
type ScoringConfig struct {
	BasePointsPerBall     int
	CascadeBaseBonus      int
	DifficultyMultipliers [MaxDifficulty]float64 // Index 0 is difficulty 1
}

// DefaultScoringConfig returns the standard scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BasePointsPerBall:     1,
		CascadeBaseBonus:      3,
		DifficultyMultipliers: [MaxDifficulty]float64{1.0, 1.5, 2.0, 2.5, 3.0},
	}
}

// Normalize replaces invalid values with defaults.
// A zero cascade bonus is valid and disables the bonus.
func (c ScoringConfig) Normalize() ScoringConfig {
	def := DefaultScoringConfig()
	if c.BasePointsPerBall <= 0 {
		c.BasePointsPerBall = def.BasePointsPerBall
	}
	if c.CascadeBaseBonus < 0 {
		c.CascadeBaseBonus = def.CascadeBaseBonus
	}
	for i, m := range c.DifficultyMultipliers {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			c.DifficultyMultipliers[i] = def.DifficultyMultipliers[i]
		}
	}
	return c
}

// Multiplier returns the multiplier for a difficulty, clamped to 1..5.
func (c ScoringConfig) Multiplier(difficulty int) float64 {
	return c.DifficultyMultipliers[ClampDifficulty(difficulty)-1]
}

// ClampDifficulty clamps d into the supported difficulty range.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// CascadePoints computes the points of one cascade sequence.
//
//	levelScore(i) = balls[i] * basePointsPerBall * (i+1)
//	bonus         = cascadeBaseBonus * (n-1) when n >= 2
//	points        = floor((sum + bonus) * multiplier[difficulty])
func CascadePoints(levelCounts []int, n int, cfg ScoringConfig, difficulty int) int {
	raw := 0
	for i, count := range levelCounts {
		raw += count * cfg.BasePointsPerBall * (i + 1)
	}
	if n >= 2 {
		raw += cfg.CascadeBaseBonus * (n - 1)
	}
	return int(math.Floor(float64(raw) * cfg.Multiplier(difficulty)))
}

// ScoreUpdate is emitted when a cascade sequence completes.
type ScoreUpdate struct {
	Score  int // Session total
	Best   int
	Points int // Points earned by this cascade
	Levels int
}

// ScoreManager accumulates session score from cascade events.
//
// A sequence opens on the first BallsCleared with no open sequence and
// closes on CascadeComplete.
type ScoreManager struct {
	cfg        ScoringConfig
	difficulty int

	score int
	best  int

	open   bool
	counts []int // Balls per level of the open sequence
}

// NewScoreManager creates a score manager. best seeds the best score.
func NewScoreManager(cfg ScoringConfig, difficulty, best int) *ScoreManager {
	return &ScoreManager{
		cfg:        cfg.Normalize(),
		difficulty: ClampDifficulty(difficulty),
		best:       best,
	}
}

// BallsCleared records count balls cleared at the current level.
func (m *ScoreManager) BallsCleared(count int) {
	if !m.open {
		m.open = true
		m.counts = []int{0}
	}
	m.counts[len(m.counts)-1] += count
}

// AdvanceLevel marks the start of the next cascade level.
// A level with nothing cleared yet is not closed, so repeated markers
// never leave empty levels behind.
func (m *ScoreManager) AdvanceLevel() {
	if !m.open || m.counts[len(m.counts)-1] == 0 {
		return
	}
	m.counts = append(m.counts, 0)
}

// CascadeComplete finalizes the open sequence with n total levels and
// resets per-level tracking.
func (m *ScoreManager) CascadeComplete(n int) ScoreUpdate {
	counts := m.counts
	for len(counts) > 0 && counts[len(counts)-1] == 0 {
		counts = counts[:len(counts)-1]
	}

	points := 0
	if m.open {
		points = CascadePoints(counts, n, m.cfg, m.difficulty)
	}
	m.score += points
	if m.score > m.best {
		m.best = m.score
	}

	m.open = false
	m.counts = nil

	return ScoreUpdate{Score: m.score, Best: m.best, Points: points, Levels: n}
}

// ApplyCascade feeds a whole cascade result through the event sequence.
func (m *ScoreManager) ApplyCascade(res CascadeResult) ScoreUpdate {
	for i, level := range res.Levels {
		if i > 0 {
			m.AdvanceLevel()
		}
		m.BallsCleared(level.ClearedCount())
	}
	return m.CascadeComplete(res.Depth())
}

// Score returns the session score.
func (m *ScoreManager) Score() int {
	return m.score
}

// Best returns the best score seen.
func (m *ScoreManager) Best() int {
	return m.best
}

// Difficulty returns the clamped difficulty.
func (m *ScoreManager) Difficulty() int {
	return m.difficulty
}

// Reset zeroes the session score and drops any open sequence. Best is kept.
func (m *ScoreManager) Reset() {
	m.score = 0
	m.open = false
	m.counts = nil
}
