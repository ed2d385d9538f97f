// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "myfootfirst/internal/domain/user"
)

// UserRepositoryFS implements user.Repository over the profile-side
// fields of users/{uid}: identity fields at the top level, plus the
// shippingAddress, insoleAnswers and maxStepReached fields.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) doc(uid string) *firestore.DocumentRef {
	return r.Client.Collection("users").Doc(uid)
}

// GetProfile returns (nil, nil) if the user document does not exist.
func (r *UserRepositoryFS) GetProfile(ctx context.Context, userID string) (*userdom.Profile, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("user_repository_fs: userID is empty")
	}

	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	data := snap.Data()
	return &userdom.Profile{
		ID:             uid,
		FirstName:      asString(data["firstName"]),
		Surname:        asString(data["surname"]),
		Email:          asString(data["email"]),
		Gender:         asString(data["gender"]),
		Country:        asString(data["country"]),
		Phone:          asString(data["phone"]),
		DOB:            asString(data["dob"]),
		MaxStepReached: asInt(data["maxStepReached"]),
	}, nil
}

// UpdateProfile merge-writes the non-nil patch fields only.
func (r *UserRepositoryFS) UpdateProfile(ctx context.Context, userID string, patch userdom.ProfilePatch) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("user_repository_fs: userID is empty")
	}

	fields := map[string]any{}
	if patch.FirstName != nil {
		fields["firstName"] = *patch.FirstName
	}
	if patch.Surname != nil {
		fields["surname"] = *patch.Surname
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Gender != nil {
		fields["gender"] = *patch.Gender
	}
	if patch.Country != nil {
		fields["country"] = *patch.Country
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.DOB != nil {
		fields["dob"] = *patch.DOB
	}
	if len(fields) == 0 {
		return nil
	}

	_, err := r.doc(uid).Set(ctx, fields, firestore.MergeAll)
	return err
}

// GetAddress returns (nil, nil) when no address has been saved.
func (r *UserRepositoryFS) GetAddress(ctx context.Context, userID string) (*userdom.Address, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("user_repository_fs: userID is empty")
	}

	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	m := asMap(snap.Data()["shippingAddress"])
	if m == nil {
		return nil, nil
	}
	addr := addressFromMap(m)
	return &addr, nil
}

// SaveAddress overwrites the shippingAddress field wholesale (no
// address book, last save wins).
func (r *UserRepositoryFS) SaveAddress(ctx context.Context, userID string, addr userdom.Address) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("user_repository_fs: userID is empty")
	}

	_, err := r.doc(uid).Set(ctx, map[string]any{
		"shippingAddress": addr,
	}, firestore.MergeAll)
	return err
}

// SaveInsoleAnswers overwrites the insoleAnswers field.
func (r *UserRepositoryFS) SaveInsoleAnswers(ctx context.Context, userID string, answers userdom.InsoleAnswers) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("user_repository_fs: userID is empty")
	}

	_, err := r.doc(uid).Set(ctx, map[string]any{
		"insoleAnswers": answers,
	}, firestore.MergeAll)
	return err
}

// SetMaxStep overwrites maxStepReached. The usecase guards
// monotonicity.
func (r *UserRepositoryFS) SetMaxStep(ctx context.Context, userID string, step int) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("user_repository_fs: userID is empty")
	}

	_, err := r.doc(uid).Set(ctx, map[string]any{
		"maxStepReached": step,
	}, firestore.MergeAll)
	return err
}
