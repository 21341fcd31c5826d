package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the aggregate root for a user's public profile. A user owns at
// most one Profile; experience and education are ordered most-recent-first
// and live only inside their parent document.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Social         Social             `bson:"social" json:"social"`
	Date           time.Time          `bson:"date" json:"date"`
}

// Experience is an entry in the profile's work history. At most one entry
// per profile may have Current set.
type Experience struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Company     string     `bson:"company" json:"company"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time  `bson:"from" json:"from"`
	To          *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// Education mirrors Experience for schooling, with the same single-Current
// invariant.
type Education struct {
	ID           string     `bson:"id" json:"id"`
	School       string     `bson:"school" json:"school"`
	Degree       string     `bson:"degree" json:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time  `bson:"from" json:"from"`
	To           *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
}

// Social holds optional links to external networks.
type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
}

// ProfileFields is the partial-update set for an upsert. Nil pointers and a
// nil Skills slice mean "leave the stored value alone".
type ProfileFields struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         []string
	Bio            *string
	GithubUsername *string
	Social         SocialFields
}

// SocialFields is the partial-update set for the social links.
type SocialFields struct {
	Youtube   *string
	Twitter   *string
	Linkedin  *string
	Instagram *string
	Facebook  *string
}
