package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
	"github.com/devconnect/devconnect/pkg/helpers"
	"github.com/devconnect/devconnect/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService handles registration, login and the current-user lookup.
type UserService struct {
	Repo        repository.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

// Register creates the user and returns a bearer token for it. The email
// uniqueness check happens at write time (unique index), so two concurrent
// registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   helpers.GravatarURL(email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	token, err := s.JWT.Issue(u.ID.Hex())
	if err != nil {
		return "", err
	}

	// Welcome email is best-effort; a broker outage must not fail the
	// registration.
	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Welcome to DevConnect",
			Text:    fmt.Sprintf("Hi %s, your DevConnect account is ready. Create your developer profile to get started.", u.Name),
		}
		if pubErr := s.Pub.PublishJSON(ctx, job); pubErr != nil && s.Logger != nil {
			s.Logger.WithError(pubErr).WithField("email", u.Email).Warn("failed to enqueue welcome email")
		}
	}

	return token, nil
}

// Login validates credentials and returns a bearer token. The error is the
// same whether the email is unknown or the password is wrong, so a caller
// cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	return s.JWT.Issue(u.ID.Hex())
}

// Get returns the user for an authenticated id.
func (s *UserService) Get(ctx context.Context, userID string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
