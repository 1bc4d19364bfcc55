// Package catalog supplies product snapshots to the recommendation engine.
package catalog

import (
	"context"
	"slices"

	"github.com/example/aromance/internal/models"
)

// Store returns a catalog snapshot. The returned slice belongs to the caller.
type Store interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Static is an in-memory catalog.
type Static struct {
	products []models.Product
}

// NewStatic copies products into a Static store.
func NewStatic(products []models.Product) *Static {
	return &Static{products: cloneAll(products)}
}

// Products returns a deep copy of the catalog.
func (s *Static) Products(_ context.Context) ([]models.Product, error) {
	return cloneAll(s.products), nil
}

// Len returns the number of products.
func (s *Static) Len() int {
	return len(s.products)
}

func cloneAll(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = clone(p)
	}
	return out
}

func clone(p models.Product) models.Product {
	p.PersonalityTags = slices.Clone(p.PersonalityTags)
	p.OccasionTags = slices.Clone(p.OccasionTags)
	p.Notes = slices.Clone(p.Notes)
	p.LocalIngredients = slices.Clone(p.LocalIngredients)
	return p
}
