package bootstrap

import "errors"

var (
	ErrMissingDBURL       = errors.New("DATABASE_URL is required")
	ErrUnknownProvider    = errors.New("unknown PROVIDER")
	ErrUnknownLockBackend = errors.New("unknown LOCK_BACKEND")
)
