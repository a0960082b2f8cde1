// Package attempt records graded submissions so learners' progress and
// common mistakes can be reviewed later.
package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skotani/lingrade/internal/database"
)

// Attempt is one graded submission.
type Attempt struct {
	ID             int64     `db:"id" yaml:"id,omitempty"`
	BankID         string    `db:"bank_id" yaml:"bank_id"`
	QuestionID     string    `db:"question_id" yaml:"question_id"`
	Submitted      string    `db:"submitted" yaml:"submitted"`
	IsCorrect      bool      `db:"is_correct" yaml:"is_correct"`
	Score          int       `db:"score" yaml:"score"`
	ErrorCode      string    `db:"error_code" yaml:"error_code,omitempty"`
	ResponseTimeMs int       `db:"response_time_ms" yaml:"response_time_ms"`
	AnsweredAt     time.Time `db:"answered_at" yaml:"answered_at"`
}

// Repository defines operations for recording graded attempts.
type Repository interface {
	BatchCreate(ctx context.Context, attempts []Attempt) error
	FindByBank(ctx context.Context, bankID string) ([]Attempt, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

var attemptColumns = []string{
	"bank_id", "question_id", "submitted", "is_correct",
	"score", "error_code", "response_time_ms", "answered_at",
}

// BatchCreate inserts a session's attempts in one transaction, one
// multi-row statement per call.
func (r *DBRepository) BatchCreate(ctx context.Context, attempts []Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	query := database.BuildMultiRowInsert("attempts", attemptColumns, len(attempts))
	args := make([]any, 0, len(attempts)*len(attemptColumns))
	for _, attempt := range attempts {
		args = append(args,
			attempt.BankID,
			attempt.QuestionID,
			attempt.Submitted,
			attempt.IsCorrect,
			attempt.Score,
			attempt.ErrorCode,
			attempt.ResponseTimeMs,
			attempt.AnsweredAt,
		)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("tx.ExecContext(insert attempts) > %w", err)
		}
		return nil
	})
}

// FindByBank returns all attempts recorded against a bank, oldest
// first.
func (r *DBRepository) FindByBank(ctx context.Context, bankID string) ([]Attempt, error) {
	var attempts []Attempt
	err := r.db.SelectContext(ctx, &attempts,
		"SELECT id, bank_id, question_id, submitted, is_correct, score, error_code, response_time_ms, answered_at FROM attempts WHERE bank_id = ? ORDER BY answered_at",
		bankID)
	if err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempts by bank) > %w", err)
	}
	return attempts, nil
}
