package models

import "errors"

// Sentinel errors shared by the client, services and controllers.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrEmptyComment         = errors.New("comment cannot be empty")
	ErrCommentsNotSupported = errors.New("comments are only supported on tickets")
)
