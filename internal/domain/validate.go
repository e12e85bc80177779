package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuestion checks a question before it is written to the store.
func ValidateQuestion(q Question) error {
	if err := validate.Struct(q); err != nil {
		return Invalid("question %d: %v", q.ID, err)
	}
	if !q.HasOption(q.CorrectAnswer) {
		return Invalid("question %d: correct answer %q is not one of the options", q.ID, q.CorrectAnswer)
	}
	return nil
}

// ValidateProfileUpdate checks the mutable profile fields.
func ValidateProfileUpdate(u ProfileUpdate) error {
	if err := validate.Struct(u); err != nil {
		return Invalid("profile: %v", err)
	}
	return nil
}
