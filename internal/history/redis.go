package history

import (
	"context"
	"slices"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

const historyKeyPrefix = "aromance:history:"

// Redis keeps one capped list per user with the newest record at the head.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func historyKey(userID string) string {
	return historyKeyPrefix + userID
}

// Append pushes records oldest first so the newest rank 1 ends up at the
// head.
func (r *Redis) Append(ctx context.Context, records []models.RecommendationRecord) error {
	if err := checkRecords(records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	records = slices.Clone(records)
	slices.SortStableFunc(records, newestFirst)

	byUser := make(map[string][]any)
	var users []string
	for i := len(records) - 1; i >= 0; i-- {
		data, err := json.Marshal(records[i])
		if err != nil {
			return errx.New(errx.KindInternal, "encode history record", err)
		}
		user := records[i].UserID
		if _, ok := byUser[user]; !ok {
			users = append(users, user)
		}
		byUser[user] = append(byUser[user], data)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, user := range users {
			pipe.LPush(ctx, historyKey(user), byUser[user]...)
			pipe.LTrim(ctx, historyKey(user), 0, MaxPerUser-1)
		}
		return nil
	})
	return errx.WrapRedis(err)
}

func (r *Redis) ForUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	values, err := r.client.LRange(ctx, historyKey(userID), 0, int64(normalizeLimit(limit)-1)).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}

	out := make([]models.RecommendationRecord, 0, len(values))
	for _, v := range values {
		var rec models.RecommendationRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, errx.New(errx.KindStorage, "decode history record", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
