package app

import (
	"context"
	"fmt"

	"aptitude-quiz-service/internal/domain"
)

// ProfileRepository reads and writes user profiles.
type ProfileRepository interface {
	// FindProfile returns found == false, with a nil error, when no row exists.
	FindProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
	CreateProfile(ctx context.Context, userID string) (domain.Profile, error)
	// UpsertProfile creates or overwrites the mutable fields; counters are left alone.
	UpsertProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error)
}

// ProfileService manages profiles and their lifetime statistics.
type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetOrCreateProfile returns the user's profile, creating an empty one on first access.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, userID string) (domain.Profile, error) {
	profile, found, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if found {
		return profile, nil
	}
	profile, err = s.profiles.CreateProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile sets the user's mutable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error) {
	if err := domain.ValidateProfileUpdate(update); err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.profiles.UpsertProfile(ctx, userID, update)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// DeriveDisplayStats computes the average score; it is 0 when nothing was attempted.
func DeriveDisplayStats(profile domain.Profile) domain.DisplayStats {
	stats := domain.DisplayStats{
		TotalAttempted: profile.TotalAttempted,
		CorrectAnswers: profile.CorrectAnswers,
	}
	if profile.TotalAttempted > 0 {
		stats.AverageScore = 100 * float64(profile.CorrectAnswers) / float64(profile.TotalAttempted)
	}
	return stats
}
