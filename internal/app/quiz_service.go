package app

import (
	"context"
	"fmt"
	"time"

	"aptitude-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// QuestionRepository loads the question set (from cache/backing store).
type QuestionRepository interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
}

// AnswerRepository stores answer records and reads them back joined with their questions.
type AnswerRepository interface {
	// InsertAnswers writes the batch and adds it to the user's profile counters atomically.
	InsertAnswers(ctx context.Context, userID string, answers []domain.Answer) error
	// ListAnswerDetails returns the user's answers, newest first.
	ListAnswerDetails(ctx context.Context, userID string) ([]domain.AnswerDetail, error)
}

// QuizService contains the question delivery use cases.
type QuizService struct {
	questions QuestionRepository
	answers   AnswerRepository
	now       func() time.Time
	newID     func() string
}

func NewQuizService(questions QuestionRepository, answers AnswerRepository) *QuizService {
	return NewQuizServiceWithClock(questions, answers, time.Now)
}

// NewQuizServiceWithClock allows deterministic timestamps in tests.
func NewQuizServiceWithClock(questions QuestionRepository, answers AnswerRepository, now func() time.Time) *QuizService {
	return &QuizService{
		questions: questions,
		answers:   answers,
		now:       now,
		newID:     uuid.NewString,
	}
}

// LoadQuestions returns every question ordered by ID. An empty set is not an error.
func (s *QuizService) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

// StartAttempt loads the question set into a fresh attempt.
func (s *QuizService) StartAttempt(ctx context.Context) (*Attempt, error) {
	questions, err := s.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return NewAttempt(questions), nil
}

// Submit writes the attempt's selections as one batch of answer records.
func (s *QuizService) Submit(ctx context.Context, userID string, attempt *Attempt) ([]domain.Answer, error) {
	return s.submit(ctx, userID, attempt.Questions(), attempt.Selections())
}

// SubmitSelections is the stateless variant of Submit: the selections are validated
// against the current question set before anything is written.
func (s *QuizService) SubmitSelections(ctx context.Context, userID string, selections map[int64]string) ([]domain.Answer, error) {
	questions, err := s.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	attempt := NewAttempt(questions)
	for id, option := range selections {
		if err := attempt.Select(id, option); err != nil {
			return nil, fmt.Errorf("question %d: %w", id, err)
		}
	}
	return s.submit(ctx, userID, questions, attempt.Selections())
}

func (s *QuizService) submit(ctx context.Context, userID string, questions []domain.Question, selections map[int64]string) ([]domain.Answer, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	answers := BuildAnswers(questions, selections, userID, s.now(), s.newID)
	if len(answers) == 0 {
		return answers, nil
	}
	if err := s.answers.InsertAnswers(ctx, userID, answers); err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	return answers, nil
}

// BuildAnswers turns selections into answer records in question order. Questions without
// a selection produce no record; correctness is exact string equality with the correct option.
func BuildAnswers(questions []domain.Question, selections map[int64]string, userID string, now time.Time, newID func() string) []domain.Answer {
	answers := make([]domain.Answer, 0, len(selections))
	for _, q := range questions {
		selected, ok := selections[q.ID]
		if !ok {
			continue
		}
		answers = append(answers, domain.Answer{
			ID:             newID(),
			QuestionID:     q.ID,
			UserID:         userID,
			SelectedAnswer: selected,
			IsCorrect:      selected == q.CorrectAnswer,
			CreatedAt:      now,
		})
	}
	return answers
}
