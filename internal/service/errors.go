package service

import "errors"

var (
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrEmailNotRegistered = errors.New("email is not registered")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWrongEmailOrAnswer = errors.New("wrong email or answer")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
)
