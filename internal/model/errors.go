package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session related errors
	ErrUnauthorized = errors.New("unauthorized")

	// Post related errors
	ErrPostNotFound = errors.New("post not found")

	// Pinterest related errors
	ErrNotConnected      = errors.New("pinterest not connected")
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
