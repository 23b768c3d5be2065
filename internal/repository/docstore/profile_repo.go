package docstore

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/store"
)

// profileRepository implements repository.ProfileRepository.
type profileRepository struct {
	store store.Client
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(client store.Client) repository.ProfileRepository {
	return &profileRepository{store: client}
}

// Get resolves the user's profile, nil when none has been saved yet.
func (r *profileRepository) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	if uid == "" {
		return nil, repository.ErrUnauthenticated
	}

	value, err := store.ReadOnce(ctx, r.store, userPath(uid, profileSegment))
	if err != nil {
		return nil, fetchErr("profile", err)
	}
	if value == nil {
		return nil, nil
	}

	var profile domain.Profile
	if err := decode(value, &profile); err != nil {
		return nil, fetchErr("profile", err)
	}
	return &profile, nil
}

// Update fully overwrites the profile document; there is no partial-field
// merge beyond what Set provides at the path level.
func (r *profileRepository) Update(ctx context.Context, uid string, profile *domain.Profile) error {
	if uid == "" {
		return repository.ErrUnauthenticated
	}
	if profile == nil {
		return errors.New("profile is required")
	}

	doc := *profile
	doc.SchemaVersion = domain.SchemaVersion
	value, err := encode(doc)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, userPath(uid, profileSegment), value)
}
