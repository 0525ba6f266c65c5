package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// LapEntry is one finished playthrough's lap time.
type LapEntry struct {
	ID        int64
	GameID    string
	Frames    int
	Cleared   bool
	CreatedAt time.Time
}

// SaveLap records a playthrough's lap time. Only cleared laps count toward
// the best lap.
func (s *Store) SaveLap(gameID string, frames int, cleared bool) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO laps (game_id, frames, cleared) VALUES (?, ?, ?)",
		gameID, frames, cleared,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save lap: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestLap returns the fastest cleared lap for the game. ok is false when
// the game was never cleared. Laps of runs that ended in game over are
// stored for Stats but never count here.
func (s *Store) BestLap(gameID string) (frames int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(frames) FROM laps WHERE game_id = ? AND cleared = 1",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best lap: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// TopLaps returns the fastest cleared laps, fastest first. A limit of zero
// or less returns all of them.
func (s *Store) TopLaps(gameID string, limit int) ([]LapEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, frames, cleared, created_at
		 FROM laps
		 WHERE game_id = ? AND cleared = 1
		 ORDER BY frames ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query laps: %w", err)
	}
	defer rows.Close()

	var laps []LapEntry
	for rows.Next() {
		var l LapEntry
		var createdAt any
		if err := rows.Scan(&l.ID, &l.GameID, &l.Frames, &l.Cleared, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		l.CreatedAt = parseTime(createdAt)
		laps = append(laps, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return laps, nil
}
