package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCurrentEntry    = errors.New("a current entry already exists")
	ErrEntryNotFound   = errors.New("entry not found")
)

// ProfileService manages the profile aggregate and its experience and
// education sub-collections, plus the account cascade delete.
type ProfileService struct {
	Profiles repository.ProfileRepository
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, posts repository.PostRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ProfileService {
	return &ProfileService{Profiles: profiles, Users: users, Posts: posts, Logger: logger, ES: es, ESIndex: esIndex}
}

// UpsertInput carries the profile fields as submitted by the client.
// Empty strings are treated as absent.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Linkedin       string
	Instagram      string
	Facebook       string
}

// SplitSkills turns the comma-separated skills string into an ordered,
// whitespace-trimmed list.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

// Upsert creates or partially updates the caller's profile. Calling it
// twice with the same fields yields the same state.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in UpsertInput) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	fields := entity.ProfileFields{
		Company:        strPtr(in.Company),
		Website:        strPtr(in.Website),
		Location:       strPtr(in.Location),
		Status:         strPtr(in.Status),
		Bio:            strPtr(in.Bio),
		GithubUsername: strPtr(in.GithubUsername),
		Social: entity.SocialFields{
			Youtube:   strPtr(in.Youtube),
			Twitter:   strPtr(in.Twitter),
			Linkedin:  strPtr(in.Linkedin),
			Instagram: strPtr(in.Instagram),
			Facebook:  strPtr(in.Facebook),
		},
	}
	if in.Skills != "" {
		fields.Skills = SplitSkills(in.Skills)
	}
	p, err := s.Profiles.Upsert(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// Me returns the caller's own profile.
func (s *ProfileService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	return s.byUser(ctx, oid)
}

// ByUser returns the profile of an arbitrary user; a malformed id reads as
// a missing profile, not a server error.
func (s *ProfileService) ByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	return s.byUser(ctx, oid)
}

func (s *ProfileService) byUser(ctx context.Context, oid primitive.ObjectID) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]entity.Profile, error) {
	return s.Profiles.List(ctx)
}

// AddExperience prepends the entry to the caller's experience list. The
// single-current invariant is checked before any mutation happens.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	p, err := s.Profiles.AddExperience(ctx, oid, exp)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu entity.Education) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if edu.ID == "" {
		edu.ID = uuid.NewString()
	}
	p, err := s.Profiles.AddEducation(ctx, oid, edu)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	p, err := s.Profiles.RemoveExperience(ctx, oid, entryID)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	return p, nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	p, err := s.Profiles.RemoveEducation(ctx, oid, entryID)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	return p, nil
}

func mapEntryErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, repository.ErrCurrentExists):
		return ErrCurrentEntry
	case errors.Is(err, repository.ErrEntryNotFound):
		return ErrEntryNotFound
	default:
		return err
	}
}

// DeleteAccount removes the user's posts, profile and account, in that
// order. The cascade is orchestrated here, not by the store.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.Posts.DeleteByUser(ctx, oid); err != nil {
		return err
	}
	if err := s.Profiles.Delete(ctx, oid); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err := s.Users.Delete(ctx, oid); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"user":           p.User.Hex(),
		"status":         p.Status,
		"skills":         p.Skills,
		"bio":            p.Bio,
		"location":       p.Location,
		"githubusername": p.GithubUsername,
		"date":           p.Date.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.User.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user", p.User.Hex()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user", p.User.Hex()).Warn("es index response error")
	}
}

// Search performs a multi_match query over the indexed profile fields.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"status^2", "skills^2", "bio", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
