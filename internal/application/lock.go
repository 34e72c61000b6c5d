package application

import "context"

// BatchLock keeps two batch passes from running at the same time.
type BatchLock interface {
	// TryAcquire returns ok=false when another holder owns key.
	TryAcquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// NoopLock always succeeds; used when LOCK_BACKEND=none.
type NoopLock struct{}

func (NoopLock) TryAcquire(context.Context, string) (string, bool, error) { return "", true, nil }
func (NoopLock) Release(context.Context, string, string) error            { return nil }
