package app

import "aptitude-quiz-service/internal/domain"

// Attempt is the in-memory state of one user working through the question set.
// It is owned by a single connection and is not safe for concurrent use.
type Attempt struct {
	questions  []domain.Question
	index      int
	selections map[int64]string
}

// NewAttempt starts an attempt at the first question.
func NewAttempt(questions []domain.Question) *Attempt {
	return &Attempt{
		questions:  questions,
		selections: make(map[int64]string),
	}
}

// Len returns the number of questions in the attempt.
func (a *Attempt) Len() int { return len(a.questions) }

// Empty reports whether there is nothing to answer.
func (a *Attempt) Empty() bool { return len(a.questions) == 0 }

// Index returns the current position.
func (a *Attempt) Index() int { return a.index }

// IsLast reports whether the current question is the final one.
func (a *Attempt) IsLast() bool { return a.index == len(a.questions)-1 }

// Questions returns the question set in delivery order.
func (a *Attempt) Questions() []domain.Question { return a.questions }

// Current returns the question at the current index.
func (a *Attempt) Current() (domain.Question, bool) {
	if a.Empty() {
		return domain.Question{}, false
	}
	return a.questions[a.index], true
}

// Select records option as the provisional answer for questionID, replacing any earlier choice.
func (a *Attempt) Select(questionID int64, option string) error {
	question, ok := findQuestion(a.questions, questionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if !question.HasOption(option) {
		return domain.Invalid("option %q is not a choice for question %d", option, questionID)
	}
	a.selections[questionID] = option
	return nil
}

// Selected returns the provisional answer for questionID, if any.
func (a *Attempt) Selected(questionID int64) (string, bool) {
	option, ok := a.selections[questionID]
	return option, ok
}

// Selections returns a copy of all provisional answers.
func (a *Attempt) Selections() map[int64]string {
	out := make(map[int64]string, len(a.selections))
	for id, option := range a.selections {
		out[id] = option
	}
	return out
}

// Advance moves one question forward (direction > 0) or back (direction < 0).
// The index is clamped to the question range; there is no wraparound.
func (a *Attempt) Advance(direction int) int {
	switch {
	case direction > 0 && a.index < len(a.questions)-1:
		a.index++
	case direction < 0 && a.index > 0:
		a.index--
	}
	return a.index
}

func findQuestion(questions []domain.Question, id int64) (domain.Question, bool) {
	for i := range questions {
		if questions[i].ID == id {
			return questions[i], true
		}
	}
	return domain.Question{}, false
}
