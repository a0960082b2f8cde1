package questionbank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrBankNotFound is returned when a bank ID matches nothing.
var ErrBankNotFound = errors.New("question bank not found")

//go:generate mockgen -source=repository.go -destination=../mocks/questionbank/mock_repository.go -package=mock_questionbank Repository

// Repository defines read access to question banks for grading
// sessions, regardless of where the banks are stored.
type Repository interface {
	FindAll(ctx context.Context) ([]Bank, error)
	FindByID(ctx context.Context, id string) (*Bank, error)
}

// DBRepository implements Repository against the platform MySQL
// database, where the authoring tools write banks.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

type bankRow struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Language string `db:"language"`
}

type questionRow struct {
	ID            string `db:"id"`
	BankID        string `db:"bank_id"`
	Type          string `db:"type"`
	Text          string `db:"text"`
	CorrectAnswer string `db:"correct_answer"`
	Points        int    `db:"points"`
	Explanation   string `db:"explanation"`
}

type optionRow struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	Text       string `db:"text"`
	IsCorrect  bool   `db:"is_correct"`
}

// FindAll loads every bank with its questions and options.
func (r *DBRepository) FindAll(ctx context.Context) ([]Bank, error) {
	var rows []bankRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, title, language FROM banks ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load banks: %w", err)
	}

	banks := make([]Bank, 0, len(rows))
	for _, row := range rows {
		bank, err := r.loadBank(ctx, row)
		if err != nil {
			return nil, err
		}
		banks = append(banks, *bank)
	}
	return banks, nil
}

// FindByID loads one bank with its questions and options.
func (r *DBRepository) FindByID(ctx context.Context, id string) (*Bank, error) {
	var row bankRow
	err := r.db.GetContext(ctx, &row, "SELECT id, title, language FROM banks WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bank %q: %w", id, ErrBankNotFound)
		}
		return nil, fmt.Errorf("load bank %q: %w", id, err)
	}
	return r.loadBank(ctx, row)
}

func (r *DBRepository) loadBank(ctx context.Context, row bankRow) (*Bank, error) {
	var questionRows []questionRow
	err := r.db.SelectContext(ctx, &questionRows,
		"SELECT id, bank_id, type, text, correct_answer, points, explanation FROM questions WHERE bank_id = ? ORDER BY id",
		row.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions of bank %q: %w", row.ID, err)
	}

	questions := make([]Question, 0, len(questionRows))
	for _, qr := range questionRows {
		var optionRows []optionRow
		err := r.db.SelectContext(ctx, &optionRows,
			"SELECT id, question_id, text, is_correct FROM question_options WHERE question_id = ? ORDER BY id",
			qr.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("load options of question %q: %w", qr.ID, err)
		}

		options := make([]Option, 0, len(optionRows))
		for _, or := range optionRows {
			options = append(options, Option{ID: or.ID, Text: or.Text, IsCorrect: or.IsCorrect})
		}

		questions = append(questions, Question{
			ID:            qr.ID,
			Type:          qr.Type,
			Text:          qr.Text,
			CorrectAnswer: qr.CorrectAnswer,
			Options:       options,
			Points:        qr.Points,
			Explanation:   qr.Explanation,
		})
	}

	return &Bank{
		ID:        row.ID,
		Title:     row.Title,
		Language:  row.Language,
		Questions: questions,
	}, nil
}
