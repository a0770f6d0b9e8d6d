package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amosWeiskopf/wordsmith/internal/models"
)

// Store indexes reported results in a SQLite database
type Store struct {
	db *sql.DB
}

// Category names stored in the words table
const (
	CategoryNoun      = "noun"
	CategoryVerb      = "verb"
	CategoryAdjective = "adjective"
)

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	url TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	positive TEXT NOT NULL,
	negative TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);

CREATE TABLE IF NOT EXISTS words (
	result_id INTEGER NOT NULL REFERENCES results(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	rank INTEGER NOT NULL,
	word TEXT NOT NULL,
	similarity REAL NOT NULL,
	tag TEXT NOT NULL,
	PRIMARY KEY (result_id, category, rank)
);

CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Save stores one page's ranked result under runID
func (s *Store) Save(ctx context.Context, runID string, result *models.RankedResult) error {
	positive, err := json.Marshal(nonNil(result.Seeds.Positive))
	if err != nil {
		return err
	}
	negative, err := json.Marshal(nonNil(result.Seeds.Negative))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO results (run_id, url, generated_at, positive, negative) VALUES (?, ?, ?, ?, ?)`,
		runID, result.URL, result.GeneratedAt.UTC().Format(time.RFC3339Nano), string(positive), string(negative))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	resultID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (result_id, category, rank, word, similarity, tag) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare words: %w", err)
	}
	defer stmt.Close()

	buckets := []struct {
		category string
		words    []models.RankedWord
	}{
		{CategoryNoun, result.Nouns},
		{CategoryVerb, result.Verbs},
		{CategoryAdjective, result.Adjectives},
	}
	for _, b := range buckets {
		for i, w := range b.words {
			if _, err := stmt.ExecContext(ctx, resultID, b.category, i+1, w.Word, w.Similarity, w.Tag); err != nil {
				return fmt.Errorf("insert word %q: %w", w.Word, err)
			}
		}
	}

	return tx.Commit()
}

// WordHit is a ranked word as stored, with the page it came from
type WordHit struct {
	RunID      string
	URL        string
	Category   string
	Rank       int
	Word       string
	Similarity float64
	Tag        string
}

// Words returns the stored words of a run ordered by page, category and rank
func (s *Store) Words(ctx context.Context, runID string) ([]WordHit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT r.run_id, r.url, w.category, w.rank, w.word, w.similarity, w.tag
FROM words w JOIN results r ON r.id = w.result_id
WHERE r.run_id = ?
ORDER BY r.id, w.category, w.rank`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []WordHit
	for rows.Next() {
		var h WordHit
		if err := rows.Scan(&h.RunID, &h.URL, &h.Category, &h.Rank, &h.Word, &h.Similarity, &h.Tag); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// CountResults returns the number of pages indexed for runID
func (s *Store) CountResults(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
