package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/core/ports"

	"github.com/google/uuid"
)

// Service reads and writes the onboarding flag and user profile blobs.
type Service struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

func NewService(store ports.KeyValueStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// OnboardingCompleted is false when the flag is missing or unreadable.
func (s *Service) OnboardingCompleted(ctx context.Context) (bool, error) {
	raw, found, err := s.store.Get(ctx, OnboardingKey)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	var done bool
	if err := json.Unmarshal([]byte(raw), &done); err != nil {
		s.logger.Warn("failed to decode onboarding status, treating as not completed", "error", err)
		return false, nil
	}
	return done, nil
}

// CompleteOnboarding stores the collected name and email and sets the flag.
func (s *Service) CompleteOnboarding(ctx context.Context, firstName, email string) (Profile, error) {
	firstName = strings.TrimSpace(firstName)
	email = strings.TrimSpace(email)
	if !IsValidFirstName(firstName) {
		return Profile{}, apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "enter a valid first name (letters only)"), apperrors.CtxField, "firstName")
	}
	if !IsValidEmail(email) {
		return Profile{}, apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "enter a valid email address"), apperrors.CtxField, "email")
	}

	p, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	p.FirstName = firstName
	p.Email = email
	if err := s.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	if err := s.store.Set(ctx, OnboardingKey, "true"); err != nil {
		return Profile{}, fmt.Errorf("save onboarding status: %w", err)
	}
	s.logger.Info("onboarding completed", "profile_id", p.ID)
	return s.Load(ctx)
}

// Load returns the stored profile, or an empty one if none is stored or the
// stored blob cannot be decoded.
func (s *Service) Load(ctx context.Context) (Profile, error) {
	raw, found, err := s.store.Get(ctx, ProfileKey)
	if err != nil {
		return Profile{}, err
	}
	if !found || strings.TrimSpace(raw) == "" {
		return Profile{}, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("failed to decode stored profile, using defaults", "error", err)
		return Profile{}, nil
	}
	return p, nil
}

// Save validates p, assigns an id if it has none, and stores it.
func (s *Service) Save(ctx context.Context, p Profile) error {
	p.Phone = RawPhone(p.Phone)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "encode profile")
	}
	return s.store.Set(ctx, ProfileKey, string(data))
}

// Logout wipes every stored key, returning the app to onboarding.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("profile cleared")
	return nil
}
