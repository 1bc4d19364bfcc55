package history

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Postgres stores history rows through gorm. The table is created by
// database.Migrate.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres constructs a Postgres store.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Append(ctx context.Context, records []models.RecommendationRecord) error {
	if err := checkRecords(records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return errx.WrapGorm(p.db.WithContext(ctx).CreateInBatches(records, 100).Error)
}

func (p *Postgres) ForUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	var out []models.RecommendationRecord
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at desc, rank asc").
		Limit(normalizeLimit(limit)).
		Find(&out).Error
	if err != nil {
		return nil, errx.WrapGorm(err)
	}
	return out, nil
}
