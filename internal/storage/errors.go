package storage

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionLimit    = errors.New("too many playback sessions")
	ErrInvalidData     = errors.New("invalid data")
)
