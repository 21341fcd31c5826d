package repository

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by user creation when the email is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrCurrentExists is returned by experience/education insertion when
	// the entry declares current=true and the profile already has a current
	// entry in the same sub-collection.
	ErrCurrentExists = errors.New("a current entry already exists")

	// ErrEntryNotFound is returned when a sub-collection entry id does not
	// match any entry of an existing profile.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrAlreadyLiked and ErrNotLiked guard the one-like-per-user rule.
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not yet liked")
)
