package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plute10/trivia/internal/question"
)

// Querier is the subset of pgxpool.Pool the repositories need. Narrowing the
// dependency keeps the repositories testable against a stub connection.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// QuestionRepository implements question.QuestionStore on Postgres. All
// ordering is an explicit ORDER BY id so that "first matching" selections stay
// deterministic.
type QuestionRepository struct {
	db Querier
}

var _ question.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(db Querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = "id, question, answer, category, difficulty"

// ListAll returns every question in id order.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]question.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		ORDER BY id ASC
	`
	return r.collect(ctx, q)
}

// ListByCategory returns every question in the given category, id order. No
// matches is an empty slice, not an error.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]question.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE category = $1
		ORDER BY id ASC
	`
	return r.collect(ctx, q, categoryID)
}

// Search returns every question whose prompt contains term, matched
// case-insensitively. The answer text is not searched.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]question.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE question ILIKE '%' || $1 || '%'
		ORDER BY id ASC
	`
	return r.collect(ctx, q, term)
}

// Create inserts a question inside a transaction and returns the assigned id.
// Any failure rolls back and maps to question.ErrUnprocessable.
func (r *QuestionRepository) Create(ctx context.Context, params question.CreateParams) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int
	if err := tx.QueryRow(ctx, q, params.Question, params.Answer, params.Category, params.Difficulty).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert question: %w", question.ErrUnprocessable)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create: %w", question.ErrUnprocessable)
	}
	return id, nil
}

// DeleteByID removes the question with the given id. A missing id is
// question.ErrNotFound; a delete failure after the existence check rolls back
// and maps to question.ErrUnprocessable, so the two surface as distinct HTTP
// statuses.
func (r *QuestionRepository) DeleteByID(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists int
	if err := tx.QueryRow(ctx, `SELECT 1 FROM questions WHERE id = $1`, id).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("question %d: %w", id, question.ErrNotFound)
		}
		return fmt.Errorf("check question %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, question.ErrUnprocessable)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete: %w", question.ErrUnprocessable)
	}
	return nil
}

// FirstMatching returns the first question in id order that matches the
// category filter (question.AnyCategory matches all) and is not in excludeIDs.
// An exhausted candidate set is question.ErrNotFound.
func (r *QuestionRepository) FirstMatching(ctx context.Context, categoryID int, excludeIDs []int) (question.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE ($1 = 0 OR category = $1)
		  AND NOT (id = ANY($2))
		ORDER BY id ASC
		LIMIT 1
	`
	if excludeIDs == nil {
		excludeIDs = []int{}
	}
	var out question.Question
	err := r.db.QueryRow(ctx, q, categoryID, excludeIDs).Scan(
		&out.ID, &out.Question, &out.Answer, &out.Category, &out.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Question{}, fmt.Errorf("no quiz candidate left: %w", question.ErrNotFound)
		}
		return question.Question{}, err
	}
	return out, nil
}

func (r *QuestionRepository) collect(ctx context.Context, sql string, args ...any) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []question.Question{}
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
