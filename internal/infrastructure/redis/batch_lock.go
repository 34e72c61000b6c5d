package redisstore

import (
	"context"
	"time"

	"stockquotes-ingestor/internal/application"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ application.BatchLock = (*BatchLock)(nil)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type BatchLock struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *BatchLock {
	return &BatchLock{Client: client, TTL: ttl}
}

func (l *BatchLock) TryAcquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *BatchLock) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, l.Client, []string{key}, token).Err()
}
