package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
)

// ProfileRepository serializes all mutations with a mutex, mirroring the
// atomicity the MongoDB implementation gets from conditional updates.
type ProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]entity.Profile // keyed by user hex id
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]entity.Profile)}
}

func cloneProfile(p entity.Profile) entity.Profile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	out.Experience = append([]entity.Experience(nil), p.Experience...)
	out.Education = append([]entity.Education(nil), p.Education...)
	return out
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields entity.ProfileFields) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID.Hex()
	p, ok := r.profiles[key]
	if !ok {
		p = entity.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Skills:     []string{},
			Experience: []entity.Experience{},
			Education:  []entity.Education{},
			Date:       time.Now().UTC(),
		}
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&p.Company, fields.Company)
	apply(&p.Website, fields.Website)
	apply(&p.Location, fields.Location)
	apply(&p.Status, fields.Status)
	apply(&p.Bio, fields.Bio)
	apply(&p.GithubUsername, fields.GithubUsername)
	apply(&p.Social.Youtube, fields.Social.Youtube)
	apply(&p.Social.Twitter, fields.Social.Twitter)
	apply(&p.Social.Linkedin, fields.Social.Linkedin)
	apply(&p.Social.Instagram, fields.Social.Instagram)
	apply(&p.Social.Facebook, fields.Social.Facebook)
	if fields.Skills != nil {
		p.Skills = append([]string(nil), fields.Skills...)
	}
	r.profiles[key] = p
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) AddExperience(ctx context.Context, userID primitive.ObjectID, exp entity.Experience) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID.Hex()
	p, ok := r.profiles[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if exp.Current {
		for _, e := range p.Experience {
			if e.Current {
				return nil, repository.ErrCurrentExists
			}
		}
	}
	p.Experience = append([]entity.Experience{exp}, p.Experience...)
	r.profiles[key] = p
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) AddEducation(ctx context.Context, userID primitive.ObjectID, edu entity.Education) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID.Hex()
	p, ok := r.profiles[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if edu.Current {
		for _, e := range p.Education {
			if e.Current {
				return nil, repository.ErrCurrentExists
			}
		}
	}
	p.Education = append([]entity.Education{edu}, p.Education...)
	r.profiles[key] = p
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID.Hex()
	p, ok := r.profiles[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := p.Experience[:0:0]
	found := false
	for _, e := range p.Experience {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, repository.ErrEntryNotFound
	}
	p.Experience = kept
	r.profiles[key] = p
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID.Hex()
	p, ok := r.profiles[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := p.Education[:0:0]
	found := false
	for _, e := range p.Education {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, repository.ErrEntryNotFound
	}
	p.Education = kept
	r.profiles[key] = p
	c := cloneProfile(p)
	return &c, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.profiles, userID.Hex())
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
