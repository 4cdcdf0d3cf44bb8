package core

import "fmt"

// MaxCascadeDepth is the default circuit breaker on cascade levels.
const MaxCascadeDepth = 10

// EngineConfig holds the tunable constants of cascade resolution.
type EngineConfig struct {
	MinMatch        int // Shortest run that matches
	MaxDepth        int // Hard cap on cascade levels per sequence
	ExplosionRadius int // Chebyshev radius of exploding balls
}

// DefaultEngineConfig returns the standard rules.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinMatch:        MinMatchLength,
		MaxDepth:        MaxCascadeDepth,
		ExplosionRadius: ExplosionRadius,
	}
}

// normalize replaces unset or invalid values with defaults.
func (c EngineConfig) normalize() EngineConfig {
	def := DefaultEngineConfig()
	if c.MinMatch < 2 {
		c.MinMatch = def.MinMatch
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = def.MaxDepth
	}
	if c.ExplosionRadius <= 0 {
		c.ExplosionRadius = def.ExplosionRadius
	}
	return c
}

// Phase is a state of the cascade state machine.
type Phase uint8

const (
	PhaseSettling Phase = iota
	PhaseMatching
	PhaseResolvingEffects
	PhaseClearing
	PhaseGravity
	PhaseDone
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseSettling:
		return "settling"
	case PhaseMatching:
		return "matching"
	case PhaseResolvingEffects:
		return "resolving_effects"
	case PhaseClearing:
		return "clearing"
	case PhaseGravity:
		return "gravity"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ClearCause tells why a ball was removed.
type ClearCause uint8

const (
	CauseMatched ClearCause = iota
	CauseExploded
)

// ClearedBall describes one removed ball.
type ClearedBall struct {
	Type  BallType
	Color Color // Color at the moment of clearing (after paint)
	Pos   Coord
	Cause ClearCause
}

// LevelRecord is emitted once per cascade level, before gravity runs.
type LevelRecord struct {
	Level      int // 0-indexed cascade level
	Cleared    []ClearedBall
	Painted    []Coord // Cells recolored by painters during this level
	Explosions int     // Exploding balls that detonated
}

// ClearedCount returns the number of balls removed at this level.
func (l LevelRecord) ClearedCount() int {
	return len(l.Cleared)
}

// CascadeResult is the outcome of a whole cascade sequence.
type CascadeResult struct {
	Levels       []LevelRecord
	TotalCleared int
	DepthCapped  bool // true if the sequence was stopped by MaxDepth
}

// Depth returns the number of cascade levels that cleared balls.
func (r CascadeResult) Depth() int {
	return len(r.Levels)
}

// LevelCounts returns the cleared count of every level in order.
func (r CascadeResult) LevelCounts() []int {
	counts := make([]int, len(r.Levels))
	for i, l := range r.Levels {
		counts[i] = l.ClearedCount()
	}
	return counts
}

// Hooks are optional callbacks fired while a cascade runs.
// OnLevel fires after a level is cleared and before its gravity step;
// OnComplete fires once the cascade reaches PhaseDone.
type Hooks struct {
	OnLevel    func(LevelRecord)
	OnComplete func(CascadeResult)
}

// Engine resolves cascades on a grid.
type Engine struct {
	cfg   EngineConfig
	hooks Hooks
}

// NewEngine creates an engine. Zero or invalid config values fall back to defaults.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: cfg.normalize()}
}

// SetHooks installs cascade callbacks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// Config returns the effective configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Resolve runs a full cascade on g, synchronously, until the grid is stable
// or the depth cap is hit.
func (e *Engine) Resolve(g *Grid) CascadeResult {
	c := e.Start(g)
	for !c.Done() {
		c.Step()
	}
	return c.Result()
}

// Cascade is a steppable cascade in progress.
// The grid must not be modified by anyone else until Done returns true.
type Cascade struct {
	engine *Engine
	grid   *Grid
	phase  Phase
	level  int

	matches  *MatchSet
	toClear  []Coord
	causes   map[Coord]ClearCause
	painted  []Coord
	exploded int

	result CascadeResult
}

// Start begins a cascade in PhaseSettling. Call Step until Done.
func (e *Engine) Start(g *Grid) *Cascade {
	return &Cascade{
		engine: e,
		grid:   g,
		phase:  PhaseSettling,
	}
}

// Phase returns the phase the next Step will execute.
func (c *Cascade) Phase() Phase {
	return c.phase
}

// Level returns the number of levels cleared so far.
func (c *Cascade) Level() int {
	return c.level
}

// Done returns true once the cascade has terminated.
func (c *Cascade) Done() bool {
	return c.phase == PhaseDone
}

// Result returns the accumulated result. It is final once Done is true.
func (c *Cascade) Result() CascadeResult {
	return c.result
}

// Step executes the current phase and moves to the next one.
// Returns the new phase.
func (c *Cascade) Step() Phase {
	switch c.phase {
	case PhaseSettling:
		c.grid.ApplyGravity()
		c.phase = PhaseMatching

	case PhaseMatching:
		c.matches = c.grid.FindMatches(c.engine.cfg.MinMatch)
		if c.matches.IsEmpty() {
			c.finish(false)
		} else {
			c.phase = PhaseResolvingEffects
		}

	case PhaseResolvingEffects:
		c.resolveEffects()
		c.phase = PhaseClearing

	case PhaseClearing:
		c.clear()
		c.phase = PhaseGravity

	case PhaseGravity:
		c.grid.ApplyGravity()
		if c.level >= c.engine.cfg.MaxDepth {
			c.finish(true)
		} else {
			c.phase = PhaseMatching
		}
	}
	return c.phase
}

// resolveEffects runs painters until no new painter joins the match set,
// then collects every cell to clear, explosion areas included.
func (c *Cascade) resolveEffects() {
	g := c.grid
	c.painted = nil
	c.exploded = 0

	resolved := make(map[Coord]bool)
	for {
		var painters []Coord
		for _, pos := range c.matches.Cells() {
			if b := g.Get(pos); b != nil && b.Type.IsPainter() && !resolved[pos] {
				painters = append(painters, pos)
			}
		}
		if len(painters) == 0 {
			break
		}
		for _, pos := range painters {
			resolved[pos] = true
			c.painted = append(c.painted, g.Paint(pos)...)
		}
		// Painting can create runs that did not exist before.
		c.matches.Merge(g.FindMatches(c.engine.cfg.MinMatch))
	}

	c.toClear = c.matches.Cells()
	c.causes = make(map[Coord]ClearCause, len(c.toClear))
	for _, pos := range c.toClear {
		c.causes[pos] = CauseMatched
	}

	for _, pos := range c.matches.Cells() {
		b := g.Get(pos)
		if b == nil || b.Type != BallExploding {
			continue
		}
		c.exploded++
		for _, hit := range g.BlastArea(pos, c.engine.cfg.ExplosionRadius) {
			if _, ok := c.causes[hit]; !ok {
				c.causes[hit] = CauseExploded
				c.toClear = append(c.toClear, hit)
			}
		}
	}
}

// clear removes the collected cells and emits the level record.
func (c *Cascade) clear() {
	record := LevelRecord{
		Level:      c.level,
		Cleared:    make([]ClearedBall, 0, len(c.toClear)),
		Painted:    c.painted,
		Explosions: c.exploded,
	}

	for _, pos := range c.toClear {
		b := c.grid.Remove(pos)
		if b == nil {
			panic(fmt.Sprintf("core: cascade level %d clears empty cell %v", c.level, pos))
		}
		record.Cleared = append(record.Cleared, ClearedBall{
			Type:  b.Type,
			Color: b.Color,
			Pos:   pos,
			Cause: c.causes[pos],
		})
	}

	c.result.Levels = append(c.result.Levels, record)
	c.result.TotalCleared += record.ClearedCount()
	c.level++

	c.matches = nil
	c.toClear = nil
	c.causes = nil

	if c.engine.hooks.OnLevel != nil {
		c.engine.hooks.OnLevel(record)
	}
}

func (c *Cascade) finish(capped bool) {
	c.phase = PhaseDone
	c.result.DepthCapped = capped
	if c.engine.hooks.OnComplete != nil {
		c.engine.hooks.OnComplete(c.result)
	}
}
