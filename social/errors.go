package social

import "errors"

// Domain errors. The HTTP layer maps these to status codes; everything else
// coming out of this package is an internal storage failure.
var (
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrAlreadyLiked     = errors.New("user has already liked this prompt")
	ErrAlreadyFollowing = errors.New("already following this creator")
	ErrNotFollowing     = errors.New("not following this creator")
)
