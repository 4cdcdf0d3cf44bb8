package core

// Palette is the full ordered color list. Levels unlock a prefix of it.
var Palette = []Color{"red", "blue", "green", "yellow", "purple", "orange", "cyan", "pink"}

// paletteThresholds are the levels at which one more color unlocks.
var paletteThresholds = []int{3, 7, 11, 15, 19}

// basePaletteSize is the number of colors at level 1.
const basePaletteSize = 3

// PaletteSize returns how many colors are in play at the given level.
func PaletteSize(level int) int {
	n := basePaletteSize
	for _, t := range paletteThresholds {
		if level >= t {
			n++
		}
	}
	return n
}

// PaletteForLevel returns the colors in play at the given level.
func PaletteForLevel(level int) []Color {
	out := make([]Color, PaletteSize(level))
	copy(out, Palette)
	return out
}

// PieceSource supplies new pieces.
type PieceSource interface {
	Generate(level, difficulty int) (*Piece, error)
}

// FactoryConfig tunes piece generation.
type FactoryConfig struct {
	SpecialChance           float64 // Per-ball chance of a special type
	BlockingChance          float64 // Per-piece chance of one blocking ball
	MinPiecesBeforeBlocking int     // Pieces generated before blocking balls can appear
	Shapes                  []ShapeType
}

// DefaultFactoryConfig returns the standard generation settings.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		SpecialChance:           0.04,
		BlockingChance:          0.08,
		MinPiecesBeforeBlocking: 20,
		Shapes:                  AllShapes(),
	}
}

// Normalize clamps probabilities into [0, 1] and fills missing values.
func (c FactoryConfig) Normalize() FactoryConfig {
	c.SpecialChance = clamp01(c.SpecialChance)
	c.BlockingChance = clamp01(c.BlockingChance)
	if c.MinPiecesBeforeBlocking < 0 {
		c.MinPiecesBeforeBlocking = 0
	}
	valid := c.Shapes[:0:0]
	for _, s := range c.Shapes {
		if Template(s) != nil {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		valid = AllShapes()
	}
	c.Shapes = valid
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// specialTypes are the ball types a special roll can yield.
var specialTypes = []BallType{
	BallExploding,
	BallPainterHorizontal,
	BallPainterVertical,
	BallPainterDiagonal,
}

// Factory generates random pieces from a seeded RNG.
type Factory struct {
	cfg       FactoryConfig
	rng       *SimpleRNG
	generated int
}

var _ PieceSource = (*Factory)(nil)

// NewFactory creates a factory. The same seed yields the same piece stream.
func NewFactory(cfg FactoryConfig, seed uint64) *Factory {
	return &Factory{cfg: cfg.Normalize(), rng: NewRNG(seed)}
}

// Generated returns the number of pieces produced so far.
func (f *Factory) Generated() int {
	return f.generated
}

// Generate creates the next piece for the given level and difficulty.
// Harder difficulties raise the blocking chance.
func (f *Factory) Generate(level, difficulty int) (*Piece, error) {
	shapeType := f.cfg.Shapes[f.rng.Intn(len(f.cfg.Shapes))]
	shape := Template(shapeType)
	palette := PaletteForLevel(level)

	balls := make([]*Ball, shape.Count())
	for i := range balls {
		color := palette[f.rng.Intn(len(palette))]
		t := BallNormal
		if f.rng.Float() < f.cfg.SpecialChance {
			t = specialTypes[f.rng.Intn(len(specialTypes))]
		}
		balls[i] = NewBall(t, color)
	}

	if f.generated >= f.cfg.MinPiecesBeforeBlocking {
		chance := f.cfg.BlockingChance * (1 + 0.25*float64(ClampDifficulty(difficulty)-1))
		if f.rng.Float() < chance {
			balls[f.rng.Intn(len(balls))] = Blocking()
		}
	}

	f.generated++
	return NewPiece(shapeType, shape, balls)
}

// SimpleRNG is a deterministic xorshift64 generator.
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a generator. A zero seed uses a fixed default.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
