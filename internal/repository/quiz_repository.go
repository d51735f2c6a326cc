package repository

import (
	"context"
	"fmt"

	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuizRepository reads and writes the quiz catalog in PostgreSQL.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// ListQuizzes returns every quiz in catalog order.
func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]model.QuizDefinition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, questions
		 FROM quizzes ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.QuizDefinition
	for rows.Next() {
		var q model.QuizDefinition
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Questions); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// UpsertAll writes quizzes in one transaction, keyed by id. Slice order is
// stored as position.
func (r *QuizRepository) UpsertAll(ctx context.Context, quizzes []model.QuizDefinition) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i, q := range quizzes {
			_, err := tx.Exec(ctx,
				`INSERT INTO quizzes (id, title, description, questions, position)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (id) DO UPDATE
				 SET title = EXCLUDED.title,
				     description = EXCLUDED.description,
				     questions = EXCLUDED.questions,
				     position = EXCLUDED.position,
				     updated_at = NOW()`,
				q.ID, q.Title, q.Description, q.Questions, i)
			if err != nil {
				return fmt.Errorf("upsert quiz %s: %w", q.ID, err)
			}
		}
		return nil
	})
}
