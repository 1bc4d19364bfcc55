package recommender

import "github.com/example/aromance/internal/models"

// Filter returns the products that may be recommended at all, preserving
// catalog order. A product is dropped when it is out of stock, priced above
// the tier ceiling, floral for an allergic user or strong for a sensitive one.
func Filter(profile models.Profile, catalog []models.Product) []models.Product {
	ceiling, bounded := profile.BudgetTier.Ceiling()

	out := make([]models.Product, 0, len(catalog))
	for _, product := range catalog {
		if !product.InStock {
			continue
		}
		if bounded && product.Price > ceiling {
			continue
		}
		if profile.Sensitivity == models.SensitivityAllergic && product.FamilyContains("floral") {
			continue
		}
		if profile.Sensitivity == models.SensitivitySensitive && product.Intensity == models.IntensityStrong {
			continue
		}
		out = append(out, product)
	}
	return out
}
