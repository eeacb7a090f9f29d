//go:build sqlite

package history

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// NewRecorder opens (creating if absent) a SQLite-backed generation history
// store at path. An empty path disables recording: the returned *Recorder is
// nil and every subsequent call is a no-op.
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: failed to open %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: failed to ping %q: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS generations (
	generation       INTEGER NOT NULL,
	species_count    INTEGER NOT NULL,
	best_fitness     REAL NOT NULL,
	average_fitness  REAL NOT NULL,
	fitness_stdev    REAL NOT NULL,
	max_fitness      REAL NOT NULL,
	min_fitness      REAL NOT NULL,
	median_fitness   REAL NOT NULL,
	population_size  INTEGER NOT NULL,
	recorded_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (generation)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: failed to create schema: %w", err)
	}
	return &Recorder{backend: &sqliteBackend{db: db}}, nil
}

type sqliteBackend struct {
	mu sync.Mutex
	db *sql.DB
}

func (b *sqliteBackend) record(row Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.db.Exec(
		`INSERT INTO generations (generation, species_count, best_fitness, average_fitness, fitness_stdev, max_fitness, min_fitness, median_fitness, population_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(generation) DO UPDATE SET
		   species_count=excluded.species_count,
		   best_fitness=excluded.best_fitness,
		   average_fitness=excluded.average_fitness,
		   fitness_stdev=excluded.fitness_stdev,
		   max_fitness=excluded.max_fitness,
		   min_fitness=excluded.min_fitness,
		   median_fitness=excluded.median_fitness,
		   population_size=excluded.population_size`,
		row.Generation, row.SpeciesCount, row.BestFitness, row.AverageFitness,
		row.FitnessStdev, row.MaxFitness, row.MinFitness, row.MedianFitness, row.PopulationSize,
	)
	if err != nil {
		return fmt.Errorf("history: failed to record generation %d: %w", row.Generation, err)
	}
	return nil
}

func (b *sqliteBackend) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Close()
}
