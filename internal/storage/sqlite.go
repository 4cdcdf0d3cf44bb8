// Package storage provides SQLite-based persistence for Ballfall runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"cmp"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ballfall/internal/games/ballfall"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished session.
type RunEntry struct {
	ID            int64
	Player        string
	Difficulty    int
	Score         int
	Level         int
	Pieces        int
	BallsCleared  int
	MaxCascade    int
	DurationTicks int64
	CreatedAt     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			difficulty INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			pieces INTEGER NOT NULL DEFAULT 0,
			balls_cleared INTEGER NOT NULL DEFAULT 0,
			max_cascade INTEGER NOT NULL DEFAULT 0,
			duration_ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS match_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ball_type TEXT NOT NULL,
			color TEXT NOT NULL,
			count INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_match_stats_run ON match_stats(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ ballfall.RunSaver = (*Store)(nil)

// SaveRun records a finished session together with its match counters.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run ballfall.RunSummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs
		 (player, difficulty, score, level, pieces, balls_cleared, max_cascade, duration_ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Player,
		run.Difficulty,
		run.Score,
		run.Level,
		run.Pieces,
		run.BallsCleared,
		run.MaxCascade,
		int64(run.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, m := range run.Matches {
		if _, err := tx.Exec(
			"INSERT INTO match_stats (run_id, ball_type, color, count) VALUES (?, ?, ?, ?)",
			id, m.Type.String(), string(m.Color), m.Count,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save match stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// difficultyFilter returns a WHERE clause selecting one difficulty,
// or every run when difficulty is 0.
func difficultyFilter(difficulty int) (string, []any) {
	if difficulty == 0 {
		return "1 = 1", nil
	}
	return "difficulty = ?", []any{difficulty}
}

// TopScores retrieves the top N runs for a difficulty (0 = all).
// Results are ordered by score descending.
func (s *Store) TopScores(difficulty, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	where, args := difficultyFilter(difficulty)
	rows, err := s.db.Query(
		`SELECT id, player, difficulty, score, level, pieces, balls_cleared, max_cascade, duration_ticks, created_at
		 FROM runs
		 WHERE `+where+`
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		append(args, limit)...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Player,
			&e.Difficulty,
			&e.Score,
			&e.Level,
			&e.Pieces,
			&e.BallsCleared,
			&e.MaxCascade,
			&e.DurationTicks,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a difficulty (0 = all).
// Returns 0 if no runs exist.
func (s *Store) HighScore(difficulty int) (int, error) {
	var score sql.NullInt64
	where, args := difficultyFilter(difficulty)
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE "+where, args...).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all runs and their match stats for a difficulty (0 = all).
func (s *Store) ClearScores(difficulty int) error {
	where, args := difficultyFilter(difficulty)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM match_stats WHERE run_id IN (SELECT id FROM runs WHERE "+where+")",
		args...,
	); err != nil {
		return fmt.Errorf("storage: cannot clear match stats: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE "+where, args...); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Difficulty   int // 0 = all difficulties
	GamesCount   int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	BallsCleared int64
	MaxCascade   int
	LastPlayed   time.Time
}

// GetStats retrieves aggregated statistics for a difficulty (0 = all).
func (s *Store) GetStats(difficulty int) (*RunStats, error) {
	stats := &RunStats{Difficulty: difficulty}
	where, args := difficultyFilter(difficulty)

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(SUM(balls_cleared), 0), COALESCE(MAX(max_cascade), 0)
		 FROM runs WHERE `+where,
		args...,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BallsCleared, &stats.MaxCascade)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM runs WHERE "+where+" ORDER BY created_at DESC LIMIT 1",
		args...,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllStats retrieves statistics for every difficulty that has been played.
func (s *Store) GetAllStats() (map[int]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(score), AVG(score), SUM(score),
		        SUM(balls_cleared), MAX(max_cascade), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(
			&st.Difficulty,
			&st.GamesCount,
			&st.HighScore,
			&st.AvgScore,
			&st.TotalScore,
			&st.BallsCleared,
			&st.MaxCascade,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// MatchStats returns match counters summed over all runs of a difficulty
// (0 = all), sorted by ball type then color.
func (s *Store) MatchStats(difficulty int) ([]core.MatchCount, error) {
	where, args := difficultyFilter(difficulty)
	rows, err := s.db.Query(
		`SELECT m.ball_type, m.color, SUM(m.count)
		 FROM match_stats m
		 JOIN runs ON runs.id = m.run_id
		 WHERE `+where+`
		 GROUP BY m.ball_type, m.color`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match stats: %w", err)
	}
	defer rows.Close()

	var out []core.MatchCount
	for rows.Next() {
		var typeName, color string
		var count int
		if err := rows.Scan(&typeName, &color, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan match stats row: %w", err)
		}
		bt, ok := core.ParseBallType(typeName)
		if !ok {
			return nil, fmt.Errorf("storage: unknown ball type %q", typeName)
		}
		out = append(out, core.MatchCount{Type: bt, Color: core.Color(color), Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	sortMatchCounts(out)
	return out, nil
}

func sortMatchCounts(counts []core.MatchCount) {
	slices.SortFunc(counts, func(a, b core.MatchCount) int {
		if a.Type != b.Type {
			return cmp.Compare(a.Type, b.Type)
		}
		return cmp.Compare(a.Color, b.Color)
	})
}

// parseTime converts a DATETIME column value. The driver returns either
// time.Time or the raw string depending on how the value was stored.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
