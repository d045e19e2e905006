package repository

import (
	"context"
	"errors"
	"fmt"

	"informativos-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuizSessionSchema holds the statements that create the table used by
// PostgresQuizSessionStore, in execution order
var QuizSessionSchema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_sessions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    assertions JSONB NOT NULL DEFAULT '[]'::jsonb,
    answers JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_updated_at ON quiz_sessions(updated_at)`,
}

// PostgresQuizSessionStore handles database operations for quiz sessions
type PostgresQuizSessionStore struct {
	db *pgxpool.Pool
}

// NewPostgresQuizSessionStore creates a new quiz session repository
func NewPostgresQuizSessionStore(db *pgxpool.Pool) *PostgresQuizSessionStore {
	return &PostgresQuizSessionStore{db: db}
}

// Create inserts a new quiz session
func (r *PostgresQuizSessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	prepareNewSession(session)

	query := `
		INSERT INTO quiz_sessions (id, assertions, answers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.Assertions,
		session.Answers,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz session: %w", err)
	}
	return nil
}

// GetByID retrieves a quiz session by ID
func (r *PostgresQuizSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	session := &models.QuizSession{}
	query := `
		SELECT id, assertions, answers, created_at, updated_at
		FROM quiz_sessions
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Assertions,
		&session.Answers,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuizSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz session: %w", err)
	}

	return session, nil
}

// Update replaces assertions and answers of a quiz session
func (r *PostgresQuizSessionStore) Update(ctx context.Context, session *models.QuizSession) error {
	query := `
		UPDATE quiz_sessions
		SET assertions = $2, answers = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		session.ID,
		session.Assertions,
		session.Answers,
	).Scan(&session.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrQuizSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update quiz session: %w", err)
	}
	return nil
}
