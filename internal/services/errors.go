package services

import "errors"

const (
	MsgFieldsRequired  = "title, artist, and tab_text are required"
	MsgVideosNotArray  = "videos must be an array"
	MsgTooManyVideos   = "Maximum of 5 videos allowed"
	MsgVideoIncomplete = "Each video must have a url and video_type"
	MsgTokenRequired   = "token is required"
)

var (
	ErrSongNotFound = errors.New("Song not found")
	ErrTabNotFound  = errors.New("Tab not found")

	// ErrTabMissing means a song exists without its tab. Creation always
	// writes both in one transaction, so this is a data inconsistency.
	ErrTabMissing = errors.New("song has no tab")
)

// ValidationError is a client-correctable problem with the request. Message
// is safe to return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}
