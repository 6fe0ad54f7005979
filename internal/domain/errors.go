package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id or name has no stored document
	ErrProductNotFound = errors.New("product not found")

	// ErrUserNotFound is returned when no profile exists for a user id
	ErrUserNotFound = errors.New("user profile not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrStorageFailure is returned when the document store fails
	ErrStorageFailure = errors.New("document store request failed")
)
