package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment not found")
)

// PostService manages posts, likes and comments. Author name and avatar are
// denormalized into the post when it is created and never refreshed.
type PostService struct {
	Posts  repository.PostRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Users.GetByID(ctx, oid)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p := &entity.Post{
		User:   u.ID,
		Text:   text,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.List(ctx)
}

// Get resolves a post by id; a syntactically invalid id reads as not found.
func (s *PostService) Get(ctx context.Context, postID string) (*entity.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	p, err := s.Posts.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a post; only its owner may do so.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.User.Hex() != requesterID {
		return ErrNotPostOwner
	}
	if err := s.Posts.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, postID, userID string) (*entity.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p, err := s.Posts.Like(ctx, pid, uid)
	if err != nil {
		return nil, mapLikeErr(err)
	}
	return p, nil
}

func (s *PostService) Unlike(ctx context.Context, postID, userID string) (*entity.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	p, err := s.Posts.Unlike(ctx, pid, uid)
	if err != nil {
		return nil, mapLikeErr(err)
	}
	return p, nil
}

func mapLikeErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrAlreadyLiked):
		return ErrAlreadyLiked
	case errors.Is(err, repository.ErrNotLiked):
		return ErrNotLiked
	default:
		return err
	}
}

// AddComment prepends a comment carrying the commenting user's snapshot.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) (*entity.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, ErrUserNotFound
	}
	cm := entity.Comment{
		ID:     uuid.NewString(),
		User:   u.ID,
		Text:   text,
		Name:   u.Name,
		Avatar: u.Avatar,
		Date:   time.Now().UTC(),
	}
	p, err := s.Posts.AddComment(ctx, pid, cm)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// RemoveComment deletes a comment; only the comment's author may do so.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, requesterID string) (*entity.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	p, err := s.Posts.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	var target *entity.Comment
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			target = &p.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCommentNotFound
	}
	if target.User.Hex() != requesterID {
		return nil, ErrNotPostOwner
	}
	out, err := s.Posts.RemoveComment(ctx, pid, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) || errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return out, nil
}
