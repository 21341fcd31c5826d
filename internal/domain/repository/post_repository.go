package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
)

// PostRepository manages the posts collection.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	// List returns all posts, newest first.
	List(ctx context.Context) ([]entity.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByUser removes every post owned by the user (account cascade).
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error

	// Like records a like; ErrAlreadyLiked when the user already liked the
	// post. Unlike removes it; ErrNotLiked when there is nothing to remove.
	Like(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error)
	Unlike(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error)

	// AddComment inserts the comment at the head of the comment list.
	AddComment(ctx context.Context, postID primitive.ObjectID, c entity.Comment) (*entity.Post, error)
	// RemoveComment removes the comment by id; ErrEntryNotFound when no
	// comment matches.
	RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) (*entity.Post, error)
}
