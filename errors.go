package havensite

import "errors"

var (
	// ErrNotFound is returned when a post, the story file, or a media
	// directory does not exist.
	ErrNotFound = errors.New("post not found")

	// ErrConflict is returned when a write would target a filename already
	// owned by a different post.
	ErrConflict = errors.New("target slug already exists")

	// ErrValidation is returned for malformed front matter or a post whose
	// date cannot be resolved from front matter or filename.
	ErrValidation = errors.New("invalid post file")
)
