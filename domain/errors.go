package domain

import "errors"

// Invariant violations surfaced by aggregate mutations. The service layer
// maps these onto the HTTP error taxonomy.
var (
	ErrAlreadyLiked       = errors.New("post has already been liked")
	ErrNotLiked           = errors.New("post has not yet been liked")
	ErrCommentNotFound    = errors.New("comment does not exist")
	ErrNotCommentAuthor   = errors.New("comment belongs to another user")
	ErrExperienceNotFound = errors.New("experience entry does not exist")
	ErrEducationNotFound  = errors.New("education entry does not exist")
)
