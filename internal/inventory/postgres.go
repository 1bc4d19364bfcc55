package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Postgres keeps reservations in their own table and the reserved count on
// the product row. Each operation locks the product row it changes.
type Postgres struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgres constructs a Postgres ledger. Tables are created by
// database.Migrate.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Reserve(ctx context.Context, productID, userID string, quantity int) (*models.Reservation, error) {
	if err := checkRequest(productID, userID, quantity); err != nil {
		return nil, err
	}

	now := p.now()
	var out models.Reservation
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := releaseExpired(tx, now, productID); err != nil {
			return err
		}

		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", productID).Error
		if err != nil {
			return errx.WrapGorm(err)
		}
		if err := checkStock(product, quantity); err != nil {
			return err
		}

		err = tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", quantity)).Error
		if err != nil {
			return errx.WrapGorm(err)
		}

		out = newReservation(productID, userID, quantity, now)
		return errx.WrapGorm(tx.Create(&out).Error)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Postgres) Release(ctx context.Context, id uuid.UUID) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&r, "id = ?", id).Error
		if err != nil {
			return errx.WrapGorm(err)
		}
		return release(tx, r)
	})
}

func (p *Postgres) ReleaseExpired(ctx context.Context) (int, error) {
	var released int
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := releaseExpired(tx, p.now(), "")
		released = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// releaseExpired drops lapsed holds, limited to one product when productID
// is set.
func releaseExpired(tx *gorm.DB, now time.Time, productID string) (int, error) {
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("expires_at <= ?", now.UTC())
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var expired []models.Reservation
	if err := q.Find(&expired).Error; err != nil {
		return 0, errx.WrapGorm(err)
	}
	for _, r := range expired {
		if err := release(tx, r); err != nil {
			return 0, err
		}
	}
	return len(expired), nil
}

func release(tx *gorm.DB, r models.Reservation) error {
	err := tx.Model(&models.Product{}).Where("id = ?", r.ProductID).
		Update("reserved_quantity", gorm.Expr("GREATEST(reserved_quantity - ?, 0)", r.Quantity)).Error
	if err != nil {
		return errx.WrapGorm(err)
	}
	return errx.WrapGorm(tx.Delete(&models.Reservation{}, "id = ?", r.ID).Error)
}
