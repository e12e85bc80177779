package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateQuestion(t *testing.T) {
	valid := Question{ID: 1, Question: "Pick B", Type: "general", Options: []string{"A", "B", "C"}, CorrectAnswer: "B"}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{name: "valid", mutate: func(q *Question) {}},
		{name: "zero id", mutate: func(q *Question) { q.ID = 0 }, wantErr: true},
		{name: "missing text", mutate: func(q *Question) { q.Question = "" }, wantErr: true},
		{name: "missing type", mutate: func(q *Question) { q.Type = "" }, wantErr: true},
		{name: "no options", mutate: func(q *Question) { q.Options = nil }, wantErr: true},
		{name: "empty option", mutate: func(q *Question) { q.Options = []string{"A", ""}; q.CorrectAnswer = "A" }, wantErr: true},
		{name: "answer not an option", mutate: func(q *Question) { q.CorrectAnswer = "D" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			q.Options = append([]string(nil), valid.Options...)
			tt.mutate(&q)
			err := ValidateQuestion(q)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	if err := ValidateProfileUpdate(ProfileUpdate{Username: "ada"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateProfileUpdate(ProfileUpdate{Username: strings.Repeat("x", 65)})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDataAccessWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := DataAccess("list questions", cause)
	if !errors.Is(err, ErrDataAccess) || !errors.Is(err, cause) {
		t.Fatalf("expected both sentinel and cause to match, got %v", err)
	}
}
