package domain

import "time"

// Question models an MCQ question. Questions are created out-of-band and never mutated.
type Question struct {
	ID            int64    `json:"id" yaml:"id" validate:"gt=0"`
	Question      string   `json:"question" yaml:"question" validate:"required"`
	Type          string   `json:"type" yaml:"type" validate:"required"` // category, e.g. "technical", "general"
	Options       []string `json:"options" yaml:"options" validate:"min=1,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correct_answer" validate:"required"`
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Answer is an immutable record of a user selecting an option for a question.
type Answer struct {
	ID             string    `json:"id"`
	QuestionID     int64     `json:"questionId"`
	UserID         string    `json:"userId"`
	SelectedAnswer string    `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AnswerDetail is an Answer joined with the fields of its originating question.
type AnswerDetail struct {
	Answer
	Question      string `json:"question"`
	Type          string `json:"type"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Profile holds a user's display name and lifetime counters.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username,omitempty"`
	TotalAttempted int       `json:"totalAttempted"`
	CorrectAnswers int       `json:"correctAnswers"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Username string `json:"username" validate:"max=64"`
}

// DisplayStats is the profile summary shown to users.
type DisplayStats struct {
	TotalAttempted int     `json:"totalAttempted"`
	CorrectAnswers int     `json:"correctAnswers"`
	AverageScore   float64 `json:"averageScore"`
}

// CategoryStats accumulates answers of one question category.
type CategoryStats struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
}

// Accuracy returns the category's percentage of correct answers.
func (c CategoryStats) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return 100 * float64(c.Correct) / float64(c.Total)
}

// Report summarizes a user's full answer history.
type Report struct {
	TotalQuestions int             `json:"totalQuestions"`
	CorrectAnswers int             `json:"correctAnswers"`
	Score          float64         `json:"score"`
	ByCategory     []CategoryStats `json:"byCategory"` // first-appearance order
	Details        []AnswerDetail  `json:"details"`
}

// Category looks up the stats for a category.
func (r Report) Category(name string) (CategoryStats, bool) {
	for _, c := range r.ByCategory {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryStats{}, false
}

// Session is an authenticated user session.
type Session struct {
	UserID    string    `json:"userId"`
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
