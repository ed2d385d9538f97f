// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	userdom "myfootfirst/internal/domain/user"
)

var (
	ErrUserInvalidArgument = errors.New("user_usecase: invalid argument")
	ErrUserEmptyPatch      = errors.New("user_usecase: patch changes nothing")
)

// maxOnboardingStep is the last screen of the onboarding flow.
const maxOnboardingStep = 7

// UserUsecase covers the profile side of users/{uid}: identity fields,
// the onboarding high-water mark, the shipping address and the raw
// insole questionnaire answers.
type UserUsecase struct {
	repo userdom.Repository
}

func NewUserUsecase(repo userdom.Repository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// GetProfile returns the stored profile. A missing document reads as an
// empty profile carrying only the uid, matching first-login behavior.
func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*userdom.Profile, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrUserInvalidArgument
	}

	p, err := uc.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &userdom.Profile{ID: uid}, nil
	}
	return p, nil
}

// UpdateProfile merge-writes the non-nil patch fields.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, patch userdom.ProfilePatch) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrUserInvalidArgument
	}
	if patch.IsEmpty() {
		return ErrUserEmptyPatch
	}
	return uc.repo.UpdateProfile(ctx, uid, patch)
}

// GetAddress returns the saved shipping address, (nil, nil) when none.
func (uc *UserUsecase) GetAddress(ctx context.Context, userID string) (*userdom.Address, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrUserInvalidArgument
	}
	return uc.repo.GetAddress(ctx, uid)
}

// SaveAddress validates, normalizes and overwrites the shipping
// address. There is no address book; the last save wins.
func (uc *UserUsecase) SaveAddress(ctx context.Context, userID string, addr userdom.Address) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrUserInvalidArgument
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	return uc.repo.SaveAddress(ctx, uid, addr.Normalize())
}

// AdvanceStep raises maxStepReached to step if it is higher than the
// stored value. Going back through the flow never lowers it.
func (uc *UserUsecase) AdvanceStep(ctx context.Context, userID string, step int) (int, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return 0, ErrUserInvalidArgument
	}
	if step < 0 || step > maxOnboardingStep {
		return 0, userdom.ErrInvalidStep
	}

	p, err := uc.repo.GetProfile(ctx, uid)
	if err != nil {
		return 0, fmt.Errorf("user_usecase: load profile: %w", err)
	}

	current := 0
	if p != nil {
		current = p.MaxStepReached
	}
	if step <= current {
		return current, nil
	}

	if err := uc.repo.SetMaxStep(ctx, uid, step); err != nil {
		return 0, err
	}
	log.Printf("[user_uc] step advanced uid=%s %d -> %d", uid, current, step)
	return step, nil
}

// SaveInsoleAnswers stores the raw questionnaire answers on the user
// document.
func (uc *UserUsecase) SaveInsoleAnswers(ctx context.Context, userID string, answers userdom.InsoleAnswers) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrUserInvalidArgument
	}
	if len(answers) == 0 {
		return ErrUserInvalidArgument
	}
	return uc.repo.SaveInsoleAnswers(ctx, uid, answers)
}
