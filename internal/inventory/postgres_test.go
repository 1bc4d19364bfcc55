package inventory

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

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("AROMANCE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AROMANCE_TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.Reservation{}, &models.Product{}))
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Reservation{}))
	return db
}

func reservedQuantity(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.ReservedQuantity
}

func TestPostgres_ReserveAndRelease(t *testing.T) {
	db := openTestDB(t)
	products := []models.Product{
		stocked("p", 5, 0, 2),
		{ID: "untracked", Name: "Untracked", Family: "woody", InStock: true},
	}
	require.NoError(t, db.Create(&products).Error)

	now := testNow
	ledger := NewPostgres(db)
	ledger.now = func() time.Time { return now }
	ctx := context.Background()

	r, err := ledger.Reserve(ctx, "p", "ayu", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, reservedQuantity(t, db, "p"))

	_, err = ledger.Reserve(ctx, "p", "budi", 3)
	assert.True(t, errx.IsKind(err, errx.KindConflict))
	_, err = ledger.Reserve(ctx, "untracked", "budi", 1)
	assert.True(t, errx.IsKind(err, errx.KindConflict))
	_, err = ledger.Reserve(ctx, "nope", "budi", 1)
	assert.True(t, errx.IsKind(err, errx.KindNotFound))

	require.NoError(t, ledger.Release(ctx, r.ID))
	assert.Zero(t, reservedQuantity(t, db, "p"))
	assert.True(t, errx.IsKind(ledger.Release(ctx, r.ID), errx.KindNotFound))

	_, err = ledger.Reserve(ctx, "p", "ayu", 5)
	require.NoError(t, err)
	now = testNow.Add(2 * models.ReservationTTL)
	n, err := ledger.ReleaseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, reservedQuantity(t, db, "p"))
}
