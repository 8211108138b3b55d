package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid employee ID or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrWrongOldPassword    = errors.New("old password does not match")
)
