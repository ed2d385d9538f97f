// internal/domain/user/repository_port.go
package user

import (
	"context"
	"errors"
)

// Standard repository errors
var (
	ErrNotFound = errors.New("user: not found")
)

// Repository defines the persistence port for the user document's
// profile-side fields (identity, onboarding step, questionnaire answers,
// shipping address). Cart and order fields have their own ports.
type Repository interface {
	// GetProfile returns (nil, nil) if the user document does not exist.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// UpdateProfile merge-writes the non-nil patch fields.
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error

	// GetAddress returns (nil, nil) when no address has been saved.
	GetAddress(ctx context.Context, userID string) (*Address, error)

	// SaveAddress overwrites the address field wholesale.
	SaveAddress(ctx context.Context, userID string, addr Address) error

	// SaveInsoleAnswers overwrites the insoleAnswers field.
	SaveInsoleAnswers(ctx context.Context, userID string, answers InsoleAnswers) error

	// SetMaxStep overwrites maxStepReached. Monotonicity is enforced by
	// the usecase (read, compare, write), matching the onboarding flow.
	SetMaxStep(ctx context.Context, userID string, step int) error
}
