package message

import "errors"

// Sentinel errors for the catalog collector.
var (
	ErrNotFound      = errors.New("message not found")
	ErrAlreadyExists = errors.New("message id already collected")
	ErrEmptyID       = errors.New("message id is empty")
)
