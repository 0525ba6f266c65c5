package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrainingRun is one invocation of the trainer.
type TrainingRun struct {
	ID          string
	Level       string
	Population  int
	MetaSeed    int64
	Generations int // stored generations
	CreatedAt   time.Time
}

// GenerationRecord is one stored generation. Population holds the encoded
// population that the next generation starts from.
type GenerationRecord struct {
	RunID      string
	Generation int
	Best       float64
	Mean       float64
	BestAgent  int
	Population []byte
	CreatedAt  time.Time
}

// CreateRun registers a new training run under a fresh id.
func (s *Store) CreateRun(level string, population int, metaSeed int64) (*TrainingRun, error) {
	run := &TrainingRun{
		ID:         uuid.NewString(),
		Level:      level,
		Population: population,
		MetaSeed:   metaSeed,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.Exec(
		"INSERT INTO training_runs (id, level, population, meta_seed, created_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Level, run.Population, run.MetaSeed, run.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create training run: %w", err)
	}
	return run, nil
}

// Run returns the training run with the given id, or nil if there is none.
func (s *Store) Run(id string) (*TrainingRun, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("storage: invalid run id %q: %w", id, err)
	}
	var run TrainingRun
	var createdAt any
	err := s.db.QueryRow(
		`SELECT r.id, r.level, r.population, r.meta_seed, r.created_at,
		        (SELECT COUNT(*) FROM generations g WHERE g.run_id = r.id)
		 FROM training_runs r
		 WHERE r.id = ?`,
		id,
	).Scan(&run.ID, &run.Level, &run.Population, &run.MetaSeed, &createdAt, &run.Generations)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query training run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}

// Runs lists the most recent training runs.
func (s *Store) Runs(limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT r.id, r.level, r.population, r.meta_seed, r.created_at,
		        (SELECT COUNT(*) FROM generations g WHERE g.run_id = r.id)
		 FROM training_runs r
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query training runs: %w", err)
	}
	defer rows.Close()

	var runs []TrainingRun
	for rows.Next() {
		var run TrainingRun
		var createdAt any
		if err := rows.Scan(&run.ID, &run.Level, &run.Population, &run.MetaSeed, &createdAt, &run.Generations); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		run.CreatedAt = parseTime(createdAt)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SaveGeneration stores a generation, replacing an earlier record with the
// same number.
func (s *Store) SaveGeneration(rec GenerationRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO generations (run_id, generation, best, mean, best_agent, population)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, generation) DO UPDATE SET
		   best = excluded.best,
		   mean = excluded.mean,
		   best_agent = excluded.best_agent,
		   population = excluded.population`,
		rec.RunID, rec.Generation, rec.Best, rec.Mean, rec.BestAgent, rec.Population,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation: %w", err)
	}
	return nil
}

// LatestGeneration returns the highest stored generation of a run, or nil.
func (s *Store) LatestGeneration(runID string) (*GenerationRecord, error) {
	var rec GenerationRecord
	var createdAt any
	err := s.db.QueryRow(
		`SELECT run_id, generation, best, mean, best_agent, population, created_at
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation DESC
		 LIMIT 1`,
		runID,
	).Scan(&rec.RunID, &rec.Generation, &rec.Best, &rec.Mean, &rec.BestAgent, &rec.Population, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generation: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// Generations lists a run's generations in order, without populations.
func (s *Store) Generations(runID string) ([]GenerationRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, generation, best, mean, best_agent, created_at
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var recs []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		var createdAt any
		if err := rows.Scan(&rec.RunID, &rec.Generation, &rec.Best, &rec.Mean, &rec.BestAgent, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// DeleteRun removes a run and its generations. Deleting an unknown run is
// not an error.
func (s *Store) DeleteRun(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("storage: invalid run id %q: %w", id, err)
	}
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM generations WHERE run_id = ?", id); err != nil {
			return fmt.Errorf("storage: cannot delete generations: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM training_runs WHERE id = ?", id); err != nil {
			return fmt.Errorf("storage: cannot delete training run: %w", err)
		}
		return nil
	})
}
