package scores

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/araquiz/backend/internal/models"
)

// leaderboardTTL bounds how stale a cached leaderboard may be.
const leaderboardTTL = 30 * time.Second

// Store persists aggregate scores and run history. The cache is optional;
// a nil cache means every read hits Postgres.
type Store struct {
	db    *sql.DB
	cache *Cache
}

func NewStore(db *sql.DB, cache *Cache) *Store {
	return &Store{db: db, cache: cache}
}

// AddScore adds a completed run's final score to the user's aggregate total.
// Final scores can be negative; the aggregate is allowed to drop.
func (s *Store) AddScore(userID int64, delta int) error {
	_, err := s.db.Exec(
		`UPDATE users SET score = score + $2, updated_at = NOW() WHERE id = $1`,
		userID, delta,
	)
	if err != nil {
		return fmt.Errorf("add score: %w", err)
	}
	return nil
}

// RecordRun appends one completed run to the history.
func (s *Store) RecordRun(userID int64, category models.Category, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO quiz_runs (user_id, category, score) VALUES ($1, $2, $3)`,
		userID, category, score,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Leaderboard returns the top users by aggregate score, descending.
func (s *Store) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:%d", limit)

	if s.cache != nil {
		var entries []models.LeaderboardEntry
		if ok, err := s.cache.GetJSON(cacheKey, &entries); err != nil {
			log.Printf("WARN: [scores] leaderboard cache read failed: %v", err)
		} else if ok {
			return entries, nil
		}
	}

	rows, err := s.db.Query(
		`SELECT username, score FROM users ORDER BY score DESC, username ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard rows: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, entries, leaderboardTTL); err != nil {
			log.Printf("WARN: [scores] leaderboard cache write failed: %v", err)
		}
	}

	return entries, nil
}

// RunHistory returns the user's most recent completed runs.
func (s *Store) RunHistory(userID int64, limit int) ([]models.QuizRun, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, category, score, finished_at
		 FROM quiz_runs WHERE user_id = $1
		 ORDER BY finished_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get run history: %w", err)
	}
	defer rows.Close()

	var runs []models.QuizRun
	for rows.Next() {
		var run models.QuizRun
		if err := rows.Scan(&run.ID, &run.UserID, &run.Category, &run.Score, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}
