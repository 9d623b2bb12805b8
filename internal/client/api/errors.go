package api

import "errors"

var (
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrNoExpiry       = errors.New("token has no expiry")
)

const (
	genericErrorMessage = "an unexpected error occurred"
	networkErrorMessage = "network error"
)
