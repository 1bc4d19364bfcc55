package profiles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Postgres stores sessions through gorm. The table is created by
// database.Migrate.
type Postgres struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgres constructs a Postgres repository.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := p.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, errx.WrapGorm(err)
	}
	return &session, nil
}

func (p *Postgres) Put(ctx context.Context, session *models.Session) error {
	if err := checkSession(session); err != nil {
		return err
	}
	// Upsert instead of Save so gorm keeps the caller's UpdatedAt.
	row := session.Clone()
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	return errx.WrapGorm(err)
}

func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	return errx.WrapGorm(p.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error)
}

func (p *Postgres) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := p.now().Add(-ttl)

	res := p.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.Session{})
	if res.Error != nil {
		return 0, errx.WrapGorm(res.Error)
	}
	return int(res.RowsAffected), nil
}
