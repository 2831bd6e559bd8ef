package middleware

import "errors"

var (
	ErrMissingCSRF = errors.New("csrf token missing")
	ErrInvalidCSRF = errors.New("invalid csrf token")
)
