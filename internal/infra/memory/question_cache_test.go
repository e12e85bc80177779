package memory

import (
	"context"
	"testing"
	"time"

	"aptitude-quiz-service/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	cache := NewQuestionCache(loader, time.Minute)

	questions, err := cache.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}
	if len(questions) != 2 || questions[0].ID != 1 || questions[1].ID != 2 {
		t.Fatalf("expected questions ordered by id, got %+v", questions)
	}

	if _, err := cache.ListQuestions(context.Background()); err != nil {
		t.Fatalf("list questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionCacheExpires(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(nil)}
	cache := NewQuestionCache(loader, time.Minute)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	questions, err := cache.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected empty question set, got %d", len(questions))
	}
	_, _ = cache.ListQuestions(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected empty set to be cached, loader calls %d", loader.calls)
	}

	now = now.Add(2 * time.Minute)
	_, _ = cache.ListQuestions(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            2,
			Question:      "Which word is a synonym of rapid?",
			Type:          "general",
			Options:       []string{"slow", "quick", "late"},
			CorrectAnswer: "quick",
		},
		{
			ID:            1,
			Question:      "What does HTTP stand for?",
			Type:          "technical",
			Options:       []string{"HyperText Transfer Protocol", "High Transfer Text Protocol"},
			CorrectAnswer: "HyperText Transfer Protocol",
		},
	}
}
