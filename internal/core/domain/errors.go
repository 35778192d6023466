package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested project, entries, or index was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid (e.g. empty entry text)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoEntries indicates the project has no logged entries
	ErrNoEntries = errors.New("no entries")

	// ErrModelUnavailable indicates the embedding or LLM backend could not be reached.
	// Operations that need embeddings abort entirely on this error - a partial
	// embedding set would break the index/entries position invariant.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrStorage indicates a durable-storage read/write or corruption failure.
	// Corrupt entry data is a storage error, never an empty result.
	ErrStorage = errors.New("storage error")

	// ErrBuildInProgress indicates another writer is rebuilding this project's index
	ErrBuildInProgress = errors.New("index build already in progress")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates a wrong admin password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
