package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSession(updated time.Time) *models.Session {
	return &models.Session{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: updated, UpdatedAt: updated},
		UserID:    "user-1",
		Stage:     models.StageOccasion,
		Profile: models.Profile{
			PreferredFamilies: []string{"fresh", "woody"},
			Occasions:         []string{"daily"},
			BudgetTier:        models.BudgetTierModerate,
			Sensitivity:       models.SensitivityNormal,
		},
	}
}

func assertSameSession(t *testing.T, want, got *models.Session) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Stage, got.Stage)
	assert.Equal(t, want.Profile, got.Profile)
	assert.Equal(t, want.Archetype, got.Archetype)
	assert.Equal(t, want.Lifestyle, got.Lifestyle)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %v != %v", want.UpdatedAt, got.UpdatedAt)
}

type backend struct {
	name string
	open func(t *testing.T) Repository
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) Repository {
			m := NewMemory()
			m.now = func() time.Time { return testNow }
			return m
		}},
		{"redis", func(t *testing.T) Repository {
			srv := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			r := NewRedis(client, 0)
			r.now = func() time.Time { return testNow }
			return r
		}},
		{"sqlite", func(t *testing.T) Repository {
			s, err := OpenSQLite(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			s.now = func() time.Time { return testNow }
			return s
		}},
	}
}

func TestRepository_PutGet(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			ctx := context.Background()

			session := newSession(testNow)
			require.NoError(t, repo.Put(ctx, session))

			got, err := repo.Get(ctx, session.ID)
			require.NoError(t, err)
			assertSameSession(t, session, got)

			session.Stage = models.StageComplete
			session.Archetype = "Natural Harmonizer"
			session.Profile.PersonalityTraits = []string{"calm"}
			session.UpdatedAt = testNow.Add(time.Minute)
			require.NoError(t, repo.Put(ctx, session))

			got, err = repo.Get(ctx, session.ID)
			require.NoError(t, err)
			assertSameSession(t, session, got)
		})
	}
}

func TestRepository_GetMissing(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			_, err := b.open(t).Get(context.Background(), uuid.New())
			require.Error(t, err)
			assert.True(t, errx.IsKind(err, errx.KindNotFound))
		})
	}
}

func TestRepository_PutRequiresID(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			err := repo.Put(context.Background(), &models.Session{})
			assert.True(t, errx.IsKind(err, errx.KindConfig))
			assert.True(t, errx.IsKind(repo.Put(context.Background(), nil), errx.KindConfig))
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			ctx := context.Background()

			session := newSession(testNow)
			require.NoError(t, repo.Put(ctx, session))
			require.NoError(t, repo.Delete(ctx, session.ID))

			_, err := repo.Get(ctx, session.ID)
			assert.True(t, errx.IsKind(err, errx.KindNotFound))

			assert.NoError(t, repo.Delete(ctx, session.ID))
		})
	}
}

func TestRepository_DeleteExpired(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			ctx := context.Background()

			stale := newSession(testNow.Add(-48 * time.Hour))
			old := newSession(testNow.Add(-25 * time.Hour))
			fresh := newSession(testNow.Add(-time.Hour))
			for _, s := range []*models.Session{stale, old, fresh} {
				require.NoError(t, repo.Put(ctx, s))
			}

			removed, err := repo.DeleteExpired(ctx, 24*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, 2, removed)

			_, err = repo.Get(ctx, stale.ID)
			assert.True(t, errx.IsKind(err, errx.KindNotFound))
			_, err = repo.Get(ctx, old.ID)
			assert.True(t, errx.IsKind(err, errx.KindNotFound))
			_, err = repo.Get(ctx, fresh.ID)
			assert.NoError(t, err)

			removed, err = repo.DeleteExpired(ctx, 24*time.Hour)
			require.NoError(t, err)
			assert.Zero(t, removed)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	session := newSession(testNow)
	require.NoError(t, repo.Put(ctx, session))
	session.Profile.PreferredFamilies[0] = "mutated"

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Profile.PreferredFamilies[0])

	got.Profile.Occasions[0] = "mutated"
	again, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "daily", again.Profile.Occasions[0])
	assert.Equal(t, 1, repo.Len())
}

func TestRedis_KeyExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedis(client, time.Hour)
	session := newSession(testNow)
	require.NoError(t, repo.Put(context.Background(), session))

	assert.Equal(t, time.Hour, srv.TTL(sessionKey(session.ID)))
	srv.FastForward(2 * time.Hour)

	_, err := repo.Get(context.Background(), session.ID)
	assert.True(t, errx.IsKind(err, errx.KindNotFound))
}

func TestRedis_DeleteExpiredCountsOnlyLiveKeys(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedis(client, time.Hour)
	repo.now = func() time.Time { return testNow }
	ctx := context.Background()

	gone := newSession(testNow.Add(-3 * time.Hour))
	require.NoError(t, repo.Put(ctx, gone))
	srv.FastForward(2 * time.Hour)

	live := newSession(testNow.Add(-3 * time.Hour))
	require.NoError(t, repo.Put(ctx, live))

	n, err := repo.DeleteExpired(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	members, err := client.ZRange(ctx, sessionIndexKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Empty(t, members)

	n, err = repo.DeleteExpired(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedis_StorageError(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedis(client, 0)

	srv.SetError("boom")
	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errx.IsKind(err, errx.KindStorage))
}
