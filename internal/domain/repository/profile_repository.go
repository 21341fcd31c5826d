package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
)

// ProfileRepository manages the one-profile-per-user aggregate. Mutations
// that depend on current state (upsert, sub-collection insertion) must be
// atomic at the store so concurrent writers cannot duplicate a profile or
// violate the single-current invariant.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)

	// Upsert applies the supplied fields to the user's profile, creating it
	// if absent, and returns the resulting state. Absent fields keep their
	// prior values.
	Upsert(ctx context.Context, userID primitive.ObjectID, fields entity.ProfileFields) (*entity.Profile, error)

	// AddExperience inserts the entry at the head of the experience list.
	// Returns ErrNotFound when no profile exists and ErrCurrentExists when
	// the entry declares current=true but the profile already has a current
	// experience; in that case nothing is mutated.
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp entity.Experience) (*entity.Profile, error)
	RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error)

	AddEducation(ctx context.Context, userID primitive.ObjectID, edu entity.Education) (*entity.Profile, error)
	RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error)

	Delete(ctx context.Context, userID primitive.ObjectID) error
}
