package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/skotani/lingrade/internal/attempt"
	"github.com/skotani/lingrade/internal/grading"
	"github.com/skotani/lingrade/internal/questionbank"
)

// QuizCLI runs an interactive grading session over one question bank.
type QuizCLI struct {
	*InteractiveCLI
	engine    *grading.Engine
	bankID    string
	bankTitle string
	questions []grading.Question
	recorder  attempt.Repository
	attempts  []attempt.Attempt
	asked     int
	correct   int
	earned    int
	possible  int

	now func() time.Time
}

// NewQuizCLI loads the bank and prepares a session. recorder may be
// nil when attempts should not be persisted.
func NewQuizCLI(
	ctx context.Context,
	repository questionbank.Repository,
	recorder attempt.Repository,
	engine *grading.Engine,
	bankID string,
	shuffle bool,
) (*QuizCLI, error) {
	bank, err := repository.FindByID(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("repository.FindByID(%s) > %w", bankID, err)
	}

	questions := make([]grading.Question, 0, len(bank.Questions))
	for _, q := range bank.Questions {
		questions = append(questions, q.ToGrading())
	}
	if shuffle {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	return &QuizCLI{
		InteractiveCLI: newInteractiveCLI(),
		engine:         engine,
		bankID:         bank.ID,
		bankTitle:      bank.Title,
		questions:      questions,
		recorder:       recorder,
		now:            time.Now,
	}, nil
}

func (cli *QuizCLI) nextQuestion() *grading.Question {
	if len(cli.questions) == 0 {
		return nil
	}
	return &cli.questions[0]
}

func (cli *QuizCLI) removeCurrentQuestion() {
	if len(cli.questions) > 0 {
		cli.questions = cli.questions[1:]
	}
}

// Session asks one question, grades the answer, and shows the verdict.
func (cli *QuizCLI) Session(ctx context.Context) error {
	question := cli.nextQuestion()
	if question == nil {
		cli.printSummary()
		if err := cli.flush(ctx); err != nil {
			return fmt.Errorf("cli.flush > %w", err)
		}
		return errEnd
	}

	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.Text)
	for _, option := range question.Options {
		fmt.Fprintf(cli.stdoutWriter, "  [%s] %s\n", option.ID, option.Text)
	}
	fmt.Fprint(cli.stdoutWriter, "> ")

	askedAt := cli.now()
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	input = strings.TrimSpace(input)
	answeredAt := cli.now()

	result := cli.engine.Grade(question, submittedAnswer(question, input))
	cli.displayResult(question, result)

	cli.asked++
	cli.possible += question.Points
	cli.earned += result.Score
	if result.IsCorrect {
		cli.correct++
	}
	cli.attempts = append(cli.attempts, attempt.Attempt{
		BankID:         cli.bankID,
		QuestionID:     question.ID,
		Submitted:      input,
		IsCorrect:      result.IsCorrect,
		Score:          result.Score,
		ErrorCode:      result.ErrorCode,
		ResponseTimeMs: int(answeredAt.Sub(askedAt).Milliseconds()),
		AnsweredAt:     answeredAt,
	})

	cli.removeCurrentQuestion()
	return nil
}

// submittedAnswer fills SelectedOptionID only when the input names an
// actual option, so typing an option's text instead of its ID still
// reaches the engine's free-text fallback.
func submittedAnswer(question *grading.Question, input string) grading.SubmittedAnswer {
	switch question.Type {
	case grading.TypeMultipleChoice, grading.TypeTrueFalse:
		for _, option := range question.Options {
			if strings.EqualFold(option.ID, input) {
				return grading.SubmittedAnswer{SelectedOptionID: option.ID, FreeText: input}
			}
		}
		return grading.SubmittedAnswer{FreeText: input}
	default:
		return grading.SubmittedAnswer{FreeText: input}
	}
}

func (cli *QuizCLI) displayResult(question *grading.Question, result grading.Result) {
	if result.IsCorrect {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		fmt.Fprintln(cli.stdoutWriter, color.GreenString("Correct! %d points", result.Score))
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		fmt.Fprintln(cli.stdoutWriter, color.RedString("Incorrect."))
		if result.Score > 0 {
			fmt.Fprintf(cli.stdoutWriter, "Partial credit: %d of %d points\n", result.Score, question.Points)
		}
	}
	if result.Feedback != "" {
		fmt.Fprintf(cli.stdoutWriter, "%s\n", cli.italic.Sprintf("%s", result.Feedback))
	}
}

func (cli *QuizCLI) printSummary() {
	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "Session finished: %s\n", cli.bankTitle)
	if cli.asked == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No questions to practice!")
		return
	}
	fmt.Fprintf(cli.stdoutWriter, "Answered %d questions, %d correct\n", cli.asked, cli.correct)
	fmt.Fprintf(cli.stdoutWriter, "Score: %d of %d points\n", cli.earned, cli.possible)
}

func (cli *QuizCLI) flush(ctx context.Context) error {
	if cli.recorder == nil || len(cli.attempts) == 0 {
		return nil
	}
	if err := cli.recorder.BatchCreate(ctx, cli.attempts); err != nil {
		return fmt.Errorf("recorder.BatchCreate > %w", err)
	}
	cli.attempts = nil
	return nil
}

// Flush persists any attempts recorded so far. Run on shutdown so an
// interrupted session still keeps its history.
func (cli *QuizCLI) Flush(ctx context.Context) error {
	return cli.flush(ctx)
}
