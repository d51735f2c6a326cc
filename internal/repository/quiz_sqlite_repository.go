package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Mooujj/quiz-hub/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS quizzes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  questions TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

// QuizSQLiteRepository reads and writes the quiz catalog in a SQLite file.
type QuizSQLiteRepository struct {
	db *sql.DB
}

// NewQuizSQLiteRepository creates a new QuizSQLiteRepository.
func NewQuizSQLiteRepository(db *sql.DB) *QuizSQLiteRepository {
	return &QuizSQLiteRepository{db: db}
}

// EnsureSchema creates the quizzes table when missing.
func (r *QuizSQLiteRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteSchema)
	return err
}

// ListQuizzes returns every quiz in catalog order.
func (r *QuizSQLiteRepository) ListQuizzes(ctx context.Context) ([]model.QuizDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, questions
		 FROM quizzes ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.QuizDefinition
	for rows.Next() {
		var (
			q   model.QuizDefinition
			raw string
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &q.Questions); err != nil {
			return nil, fmt.Errorf("decode questions of quiz %s: %w", q.ID, err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// UpsertAll writes quizzes in one transaction, keyed by id. Slice order is
// stored as position.
func (r *QuizSQLiteRepository) UpsertAll(ctx context.Context, quizzes []model.QuizDefinition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, q := range quizzes {
		raw, err := json.Marshal(q.Questions)
		if err != nil {
			return fmt.Errorf("encode questions of quiz %s: %w", q.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quizzes (id, title, description, questions, position)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE
			 SET title = excluded.title,
			     description = excluded.description,
			     questions = excluded.questions,
			     position = excluded.position,
			     updated_at = unixepoch()`,
			q.ID, q.Title, q.Description, string(raw), i)
		if err != nil {
			return fmt.Errorf("upsert quiz %s: %w", q.ID, err)
		}
	}
	return tx.Commit()
}
