package profiles

import (
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

const (
	sessionKeyPrefix = "aromance:session:"
	sessionIndexKey  = "aromance:sessions"
)

// Redis stores each session as a JSON string and keeps a sorted set of ids
// scored by last update for expiry sweeps.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedis constructs a Redis repository. A positive ttl is also applied as
// the key expiry so abandoned sessions disappear without a sweep.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errx.New(errx.KindStorage, "decode session", err)
	}
	return &s, nil
}

func (r *Redis) Put(ctx context.Context, session *models.Session) error {
	if err := checkSession(session); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errx.New(errx.KindInternal, "encode session", err)
	}

	expiry := time.Duration(0)
	if r.ttl > 0 {
		expiry = r.ttl
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), data, expiry)
		pipe.ZAdd(ctx, sessionIndexKey, redis.Z{
			Score:  float64(session.UpdatedAt.Unix()),
			Member: session.ID.String(),
		})
		return nil
	})
	return errx.WrapRedis(err)
}

func (r *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.ZRem(ctx, sessionIndexKey, id.String())
		return nil
	})
	return errx.WrapRedis(err)
}

func (r *Redis) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := r.now().Add(-ttl).Unix()

	ids, err := r.client.ZRangeByScore(ctx, sessionIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = sessionKeyPrefix + id
		members[i] = id
	}

	var deleted *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, sessionIndexKey, members...)
		return nil
	})
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	// Keys already dropped by their TTL are pruned from the index but not counted.
	return int(deleted.Val()), nil
}
