package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// StageStats summarizes the finished playthroughs of one stage. Every
// finished playthrough stores a lap, scored or not.
type StageStats struct {
	GameID     string
	Plays      int
	Clears     int
	HighScore  int
	BestLap    int // frames; 0 when never cleared
	LastPlayed time.Time
}

// SaveScore records a new score for the given stage.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best limit scores, highest first. A limit of zero
// or less returns every score.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
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

// AllScores returns every score of the stage, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.TopScores(gameID, -1)
}

// HighScore returns the highest score for the stage, or 0.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and laps for the given stage.
func (s *Store) ClearScores(gameID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear scores: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM laps WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear laps: %w", err)
		}
		return nil
	})
}

// Stats summarizes a stage from its laps and scores.
func (s *Store) Stats(gameID string) (StageStats, error) {
	st := StageStats{GameID: gameID}
	var best sql.NullInt64
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(cleared), 0),
		        MIN(CASE WHEN cleared = 1 THEN frames END),
		        MAX(created_at)
		 FROM laps WHERE game_id = ?`,
		gameID,
	).Scan(&st.Plays, &st.Clears, &best, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return st, fmt.Errorf("storage: cannot query stage stats: %w", err)
	}
	st.BestLap = int(best.Int64)
	st.LastPlayed = parseTime(last)

	if st.HighScore, err = s.HighScore(gameID); err != nil {
		return st, err
	}
	return st, nil
}
