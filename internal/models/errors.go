package models

import "errors"

var (
	// ErrNotFound is returned when an entity key is unknown to a source.
	ErrNotFound = errors.New("not found")
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
)
