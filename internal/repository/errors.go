package repository

import "errors"

var (
	ErrNotFound       = errors.New("entity not found")
	ErrAlreadyExists  = errors.New("entity already exists")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrCacheMiss      = errors.New("key not found in cache")
)
