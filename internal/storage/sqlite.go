// Package storage provides SQLite-based persistence for character saves
// and simulator run summaries. Uses the pure-Go modernc.org/sqlite driver
// to avoid CGO dependencies. The simulation kernel never touches this;
// persistence is entirely the host's concern.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-idler/internal/sim"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveEntry is the headline row for one stored character save.
type SaveEntry struct {
	ID           int64
	Name         string
	Level        int
	PrestigeRank int
	Zone         int
	CreatedAt    time.Time
}

// RunEntry is one recorded headless simulation run.
type RunEntry struct {
	ID           int64
	Seed         int64
	Ticks        int
	FinalLevel   int
	PrestigeRank int
	Kills        int
	Deaths       int
	ZoneReached  int
	CreatedAt    time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			level INTEGER NOT NULL,
			prestige_rank INTEGER NOT NULL,
			zone INTEGER NOT NULL,
			state_json BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saves_name ON saves(name, id DESC);

		CREATE TABLE IF NOT EXISTS sim_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			final_level INTEGER NOT NULL,
			prestige_rank INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			zone_reached INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sim_runs_recent ON sim_runs(id DESC);
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

// SaveWorld stores a full world snapshot. Returns the save ID.
func (s *Store) SaveWorld(w *world.State) (int64, error) {
	blob, err := json.Marshal(w)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode world: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO saves (name, level, prestige_rank, zone, state_json) VALUES (?, ?, ?, ?, ?)",
		w.Character.Name, w.Character.Level, w.Character.PrestigeRank, w.Character.Zone, blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save world: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LoadLatest retrieves the most recent save for the given character name.
// Returns nil with no error if no save exists.
func (s *Store) LoadLatest(name string) (*world.State, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT state_json FROM saves WHERE name = ? ORDER BY id DESC LIMIT 1",
		name,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}

	var w world.State
	if err := json.Unmarshal(blob, &w); err != nil {
		return nil, fmt.Errorf("storage: cannot decode save: %w", err)
	}
	return &w, nil
}

// LastSavedAt returns the creation time of the newest save for the given
// character name, in UTC. Returns the zero time when no save exists.
func (s *Store) LastSavedAt(name string) (time.Time, error) {
	var createdAt any
	err := s.db.QueryRow(
		"SELECT created_at FROM saves WHERE name = ? ORDER BY id DESC LIMIT 1",
		name,
	).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: cannot query save time: %w", err)
	}
	return parseTime(createdAt), nil
}

// ListSaves retrieves the most recent saves across all characters.
func (s *Store) ListSaves(limit int) ([]SaveEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, level, prestige_rank, zone, created_at
		 FROM saves
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Level, &e.PrestigeRank, &e.Zone, &createdAt); err != nil {
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

// RecordRun stores the summary of one headless simulation run.
func (s *Store) RecordRun(seed int64, stats sim.BatchStats) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sim_runs (seed, ticks, final_level, prestige_rank, kills, deaths, zone_reached)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seed, stats.Ticks, stats.FinalLevel, stats.PrestigeRank, stats.Kills, stats.Deaths, stats.ZoneReached,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent simulation runs.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, ticks, final_level, prestige_rank, kills, deaths, zone_reached, created_at
		 FROM sim_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Ticks, &e.FinalLevel, &e.PrestigeRank, &e.Kills, &e.Deaths, &e.ZoneReached, &createdAt); err != nil {
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

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
