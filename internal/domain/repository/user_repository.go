package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
)

// UserRepository defines the interface for credential-store operations.
type UserRepository interface {
	// Create persists a new user and fills in its id. Returns
	// ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
