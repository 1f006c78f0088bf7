package storage

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)
