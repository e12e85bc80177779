package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"aptitude-quiz-service/internal/domain"
)

// Store is an in-memory data store holding questions, answers and profiles.
// It implements the question loader and the answer and profile repositories.
type Store struct {
	now func() time.Time

	mu        sync.RWMutex
	questions []domain.Question
	answers   []domain.Answer
	profiles  map[string]domain.Profile
}

func NewStore(questions []domain.Question) *Store {
	return &Store{
		now:       time.Now,
		questions: sortedQuestions(questions),
		profiles:  make(map[string]domain.Profile),
	}
}

func (s *Store) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

// InsertAnswers appends the batch and bumps the user's profile counters in one critical section.
func (s *Store) InsertAnswers(_ context.Context, userID string, answers []domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	s.answers = append(s.answers, answers...)

	profile, ok := s.profiles[userID]
	if !ok {
		profile = domain.Profile{ID: userID}
	}
	profile.TotalAttempted += len(answers)
	profile.CorrectAnswers += correct
	profile.UpdatedAt = s.now()
	s.profiles[userID] = profile
	return nil
}

// ListAnswerDetails joins the user's answers with their questions, newest first.
func (s *Store) ListAnswerDetails(_ context.Context, userID string) ([]domain.AnswerDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[int64]domain.Question, len(s.questions))
	for _, q := range s.questions {
		byID[q.ID] = q
	}

	var details []domain.AnswerDetail
	for i := len(s.answers) - 1; i >= 0; i-- {
		a := s.answers[i]
		if a.UserID != userID {
			continue
		}
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		details = append(details, domain.AnswerDetail{
			Answer:        a,
			Question:      q.Question,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	// Walking backwards keeps later writes first when timestamps tie.
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
	return details, nil
}

func (s *Store) FindProfile(_ context.Context, userID string) (domain.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	return profile, ok, nil
}

func (s *Store) CreateProfile(_ context.Context, userID string) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	profile := domain.Profile{ID: userID, UpdatedAt: s.now()}
	s.profiles[userID] = profile
	return profile, nil
}

func (s *Store) UpsertProfile(_ context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		profile = domain.Profile{ID: userID}
	}
	profile.Username = update.Username
	profile.UpdatedAt = s.now()
	s.profiles[userID] = profile
	return profile, nil
}

func sortedQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
