package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is an independent text post. Name and Avatar are snapshots of the
// author's profile taken at creation time; they do not track later edits.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like records a single user's like; a user may like a post at most once.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded comment with its own author snapshot.
type Comment struct {
	ID     string             `bson:"id" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}
