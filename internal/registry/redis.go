package registry

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const postedSetKey = "hockeyhook:posted_games"

// RedisRegistry keeps the posted-game set in a Redis set, for deploys
// where the process has no stable local disk.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry connects to Redis and verifies the connection.
func NewRedisRegistry(redisURL string) (*RedisRegistry, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisRegistry{client: client}, nil
}

func (r *RedisRegistry) Contains(ctx context.Context, gameID int64) (bool, error) {
	return r.client.SIsMember(ctx, postedSetKey, strconv.FormatInt(gameID, 10)).Result()
}

func (r *RedisRegistry) Add(ctx context.Context, gameID int64) error {
	return r.client.SAdd(ctx, postedSetKey, strconv.FormatInt(gameID, 10)).Err()
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
