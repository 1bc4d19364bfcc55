package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/aromance/internal/models"
)

func TestPostgres_NewestBatchFirst(t *testing.T) {
	dsn := os.Getenv("AROMANCE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AROMANCE_TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.RecommendationRecord{}))
	require.NoError(t, db.AutoMigrate(&models.RecommendationRecord{}))

	store := NewPostgres(db)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, batch("ayu", "s1", testNow, "IDN_001", "IDN_002")))
	require.NoError(t, store.Append(ctx, batch("ayu", "s2", testNow.Add(time.Hour), "IDN_010")))

	got, err := store.ForUser(ctx, "ayu", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"IDN_010", "IDN_001", "IDN_002"}, productIDs(got))
	assert.Equal(t, "s2", got[0].SessionID)
}
