package gabamenu

import "errors"

var (
	ErrCancelled = errors.New("menu closed by user")
	ErrQuit      = errors.New("window closed")

	ErrEmptyOptions   = errors.New("option list must not be empty")
	ErrInvalidLabel   = errors.New("option label must be a non-empty string")
	ErrInvalidDefault = errors.New("default index out of range")
	ErrNotFound       = errors.New("value not found")
	ErrOutOfRange     = errors.New("index out of range")
	ErrInvalidValue   = errors.New("invalid value")
	ErrNoValue        = errors.New("widget has no value")
	ErrUnknownSound   = errors.New("unknown sound type")
)
