package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/domain/repository"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
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
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PostRepository) List(ctx context.Context) ([]entity.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []entity.Post
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error) {
	p := &entity.Post{}
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

// Like is atomic: the filter excludes posts the user already liked, so a
// double-like can never insert twice even under concurrent requests.
func (r *PostRepository) Like(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error) {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": bson.A{entity.Like{User: userID}}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Post{}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if exists, eErr := r.exists(ctx, postID); eErr != nil {
		return nil, eErr
	} else if exists {
		return nil, repository.ErrAlreadyLiked
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) Unlike(ctx context.Context, postID, userID primitive.ObjectID) (*entity.Post, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Post{}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if exists, eErr := r.exists(ctx, postID); eErr != nil {
		return nil, eErr
	} else if exists {
		return nil, repository.ErrNotLiked
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, c entity.Comment) (*entity.Post, error) {
	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{c}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Post{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	return nil, err
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) (*entity.Post, error) {
	filter := bson.M{"_id": postID, "comments.id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Post{}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if exists, eErr := r.exists(ctx, postID); eErr != nil {
		return nil, eErr
	} else if exists {
		return nil, repository.ErrEntryNotFound
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
