package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another worker is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const releaseTimeout = 5 * time.Second

// RedisLock is a best-effort cross-process mutex built on SET NX PX.
type RedisLock struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *logging.Logger
	token  func() string
}

func NewRedisLock(client redis.UniversalClient, ttl time.Duration, logger *logging.Logger) *RedisLock {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisLock{
		client: client,
		ttl:    ttl,
		logger: logger,
		token:  uuid.NewString,
	}
}

// TryAcquire returns ok=false without error when another holder owns key.
func (l *RedisLock) TryAcquire(ctx context.Context, key string) (func(), bool, error) {
	token := l.token()
	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		deleted, err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Int64()
		if err != nil {
			l.logger.WarnContext(releaseCtx, "release lock failed", "key", key, "error", err)
			return
		}
		if deleted == 0 {
			l.logger.WarnContext(releaseCtx, "lock expired before release", "key", key, "ttl", l.ttl)
		}
	}
	return release, true, nil
}
