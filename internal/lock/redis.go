package lock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "kinlead:lock:"

// releaseScript deletes the key only while it still holds our token, so a
// holder whose lease expired cannot free a lock someone else now owns.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// refreshScript extends the key while it still holds our token. A
// non-positive ttl only checks ownership.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 1`)

// Redis is a Locker shared by every process using the same Redis.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (l *Redis) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, redisKeyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis set nx: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &redisLease{client: l.client, key: redisKeyPrefix + key, token: token}, nil
}

type redisLease struct {
	client   redis.Cmdable
	key      string
	token    string
	released bool
}

func (r *redisLease) Refresh(ctx context.Context, ttl time.Duration) error {
	if r.released {
		return ErrLost
	}
	held, err := refreshScript.Run(ctx, r.client, []string{r.key}, r.token, strconv.FormatInt(ttl.Milliseconds(), 10)).Int64()
	if err != nil {
		return fmt.Errorf("redis refresh lock: %w", err)
	}
	if held == 0 {
		return ErrLost
	}
	return nil
}

func (r *redisLease) Release(ctx context.Context) error {
	if r.released {
		return nil
	}
	deleted, err := releaseScript.Run(ctx, r.client, []string{r.key}, r.token).Int64()
	if err != nil {
		return fmt.Errorf("redis release lock: %w", err)
	}
	r.released = true
	if deleted == 0 {
		return ErrLost
	}
	return nil
}
