package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrLayoutFailed        = errors.New("layout projection failed")
	ErrEmbedderUnavailable = errors.New("embedder unavailable")
)
