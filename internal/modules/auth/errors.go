package auth

import "errors"

var (
	// ErrInvalidCredentials covers bad password and unknown user alike so
	// responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken covers not-found, expired and already-rotated
	// refresh tokens uniformly.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrInactiveUser       = errors.New("inactive user")
	ErrEmailAlreadyExists = errors.New("email already exists")
)
