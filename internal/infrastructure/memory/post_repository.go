package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
)

type PostRepository struct {
	mu    sync.Mutex
	posts map[string]entity.Post // keyed by hex id
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]entity.Post)}
}

func clonePost(p entity.Post) entity.Post {
	out := p
	out.Likes = append([]entity.Like(nil), p.Likes...)
	out.Comments = append([]entity.Comment(nil), p.Comments...)
	return out
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	r.posts[p.ID.Hex()] = clonePost(*p)
	return nil
}

func (r *PostRepository) List(ctx context.Context) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := clonePost(p)
	return &c, nil
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id.Hex()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id.Hex())
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.posts {
		if p.User == userID {
			delete(r.posts, key)
		}
	}
	return nil
}

func (r *PostRepository) Like(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, l := range p.Likes {
		if l.User == userID {
			return nil, repository.ErrAlreadyLiked
		}
	}
	p.Likes = append([]entity.Like{{User: userID}}, p.Likes...)
	r.posts[postID.Hex()] = p
	c := clonePost(p)
	return &c, nil
}

func (r *PostRepository) Unlike(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := p.Likes[:0:0]
	found := false
	for _, l := range p.Likes {
		if l.User == userID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, repository.ErrNotLiked
	}
	p.Likes = kept
	r.posts[postID.Hex()] = p
	c := clonePost(p)
	return &c, nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, cm entity.Comment) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Comments = append([]entity.Comment{cm}, p.Comments...)
	r.posts[postID.Hex()] = p
	c := clonePost(p)
	return &c, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := p.Comments[:0:0]
	found := false
	for _, cm := range p.Comments {
		if cm.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, cm)
	}
	if !found {
		return nil, repository.ErrEntryNotFound
	}
	p.Comments = kept
	r.posts[postID.Hex()] = p
	c := clonePost(p)
	return &c, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
