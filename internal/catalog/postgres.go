package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// PostgresStore reads the catalog from the products table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore constructs PostgresStore.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Products returns every product in catalog order.
func (s *PostgresStore) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("position asc, id asc").Find(&products).Error; err != nil {
		return nil, errx.WrapGorm(err)
	}
	for i := range products {
		products[i] = products[i].Normalize()
	}
	return products, nil
}

// Seed upserts products by id inside one transaction.
func (s *PostgresStore) Seed(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(products, 100).Error
	})
	return errx.WrapGorm(err)
}
