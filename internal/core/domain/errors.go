package domain

import "errors"

var (
	// ErrDuplicateIdentity is returned when registering an email that is already on file.
	ErrDuplicateIdentity = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a task does not exist for the requesting owner.
	ErrNotFound = errors.New("task not found")

	// ErrUserNotFound is returned by the credential store for an unknown user id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated is returned when a request carries no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidStatus is returned for a task status other than pending or completed.
	ErrInvalidStatus = errors.New("invalid status")
)
