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

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("profiles")}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Profile, error) {
	p := &entity.Profile{}
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []entity.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert runs create-or-update as a single FindOneAndUpdate so two
// concurrent calls for the same user can never produce two profiles (the
// unique index on "user" backs this up).
func (r *ProfileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields entity.ProfileFields) (*entity.Profile, error) {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("company", fields.Company)
	setString("website", fields.Website)
	setString("location", fields.Location)
	setString("status", fields.Status)
	setString("bio", fields.Bio)
	setString("githubusername", fields.GithubUsername)
	setString("social.youtube", fields.Social.Youtube)
	setString("social.twitter", fields.Social.Twitter)
	setString("social.linkedin", fields.Social.Linkedin)
	setString("social.instagram", fields.Social.Instagram)
	setString("social.facebook", fields.Social.Facebook)
	if fields.Skills != nil {
		set["skills"] = fields.Skills
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"user":       userID,
			"date":       time.Now().UTC(),
			"experience": []entity.Experience{},
			"education":  []entity.Education{},
		},
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	p := &entity.Profile{}
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddExperience inserts at the head of the list. When the entry is current,
// the filter excludes profiles that already have a current experience, so
// the invariant check and the insert are one atomic operation.
func (r *ProfileRepository) AddExperience(ctx context.Context, userID primitive.ObjectID, exp entity.Experience) (*entity.Profile, error) {
	return r.pushEntry(ctx, userID, "experience", exp, exp.Current)
}

func (r *ProfileRepository) AddEducation(ctx context.Context, userID primitive.ObjectID, edu entity.Education) (*entity.Profile, error) {
	return r.pushEntry(ctx, userID, "education", edu, edu.Current)
}

func (r *ProfileRepository) pushEntry(ctx context.Context, userID primitive.ObjectID, field string, entry any, current bool) (*entity.Profile, error) {
	filter := bson.M{"user": userID}
	if current {
		filter[field+".current"] = bson.M{"$ne": true}
	}
	update := bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Profile{}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if current {
		// Distinguish "no profile" from "filter rejected the insert".
		n, cErr := r.col.CountDocuments(ctx, bson.M{"user": userID})
		if cErr != nil {
			return nil, cErr
		}
		if n > 0 {
			return nil, repository.ErrCurrentExists
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error) {
	return r.pullEntry(ctx, userID, "experience", entryID)
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*entity.Profile, error) {
	return r.pullEntry(ctx, userID, "education", entryID)
}

func (r *ProfileRepository) pullEntry(ctx context.Context, userID primitive.ObjectID, field, entryID string) (*entity.Profile, error) {
	filter := bson.M{"user": userID, field + ".id": entryID}
	update := bson.M{"$pull": bson.M{field: bson.M{"id": entryID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Profile{}
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	n, cErr := r.col.CountDocuments(ctx, bson.M{"user": userID})
	if cErr != nil {
		return nil, cErr
	}
	if n > 0 {
		return nil, repository.ErrEntryNotFound
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
