package models

import (
	"strings"

	"github.com/lib/pq"
)

// Intensity is the sillage class of a fragrance.
type Intensity string

const (
	IntensityUnspecified Intensity = ""
	IntensityLight       Intensity = "light"
	IntensityModerate    Intensity = "moderate"
	IntensityStrong      Intensity = "strong"
)

// Product is one catalog entry. It is read-only while a ranking runs.
type Product struct {
	ID               string         `gorm:"primaryKey" json:"id" validate:"required"`
	Position         int            `gorm:"index" json:"position"`
	Name             string         `json:"name" validate:"required"`
	Brand            string         `json:"brand"`
	Family           string         `gorm:"index" json:"family" validate:"required"`
	PersonalityTags  pq.StringArray `gorm:"type:text[]" json:"personality_tags"`
	OccasionTags     pq.StringArray `gorm:"type:text[]" json:"occasion_tags"`
	Notes            pq.StringArray `gorm:"type:text[]" json:"notes"`
	LocalIngredients pq.StringArray `gorm:"type:text[]" json:"local_ingredients"`
	Price            int64          `json:"price" validate:"min=0"`
	Intensity        Intensity      `json:"intensity" validate:"omitempty,oneof=light moderate strong"`
	Heritage         bool           `json:"heritage"`
	Certified        bool           `json:"certified"`
	ClimateSuited    bool           `json:"climate_suited"`
	InStock          bool           `json:"in_stock"`
	Description      string         `json:"description"`

	// Stock is tracked only when MinStockThreshold is positive. Tracked
	// products derive InStock from the available quantity.
	StockQuantity     int `json:"stock_quantity,omitempty" validate:"min=0"`
	ReservedQuantity  int `json:"reserved_quantity,omitempty" validate:"min=0"`
	MinStockThreshold int `json:"min_stock_threshold,omitempty" validate:"min=0"`
}

// Tracked reports whether the product carries inventory counts.
func (p Product) Tracked() bool {
	return p.MinStockThreshold > 0
}

// Available is the unreserved stock, never negative.
func (p Product) Available() int {
	return max(p.StockQuantity-p.ReservedQuantity, 0)
}

// Normalize returns a copy whose matching attributes are lowercased and
// trimmed so they compare equal to a normalised Profile. Tag slices are
// copied, never modified in place.
func (p Product) Normalize() Product {
	p.Family = strings.ToLower(strings.TrimSpace(p.Family))
	p.Intensity = Intensity(strings.ToLower(strings.TrimSpace(string(p.Intensity))))
	p.PersonalityTags = lowerTags(p.PersonalityTags)
	p.OccasionTags = lowerTags(p.OccasionTags)
	if p.Tracked() {
		p.InStock = p.Available() > 0
	}
	return p
}

func lowerTags(tags pq.StringArray) pq.StringArray {
	if tags == nil {
		return nil
	}
	out := make(pq.StringArray, len(tags))
	for i, tag := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	return out
}

// FamilyContains reports whether the product family contains tag as a
// case-insensitive substring. Empty tags never match.
func (p Product) FamilyContains(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Family), tag)
}
