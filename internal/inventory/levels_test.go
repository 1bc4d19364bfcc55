package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aromance/internal/models"
)

func stocked(id string, stock, reserved, threshold int) models.Product {
	return models.Product{
		ID:                id,
		Name:              "Product " + id,
		Family:            "fresh",
		StockQuantity:     stock,
		ReservedQuantity:  reserved,
		MinStockThreshold: threshold,
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		want    Level
	}{
		{"untracked", models.Product{ID: "u", InStock: true}, LevelUntracked},
		{"empty", stocked("a", 0, 0, 10), LevelOut},
		{"fully reserved", stocked("b", 6, 6, 10), LevelOut},
		{"at threshold", stocked("c", 10, 0, 10), LevelLow},
		{"reserved down to threshold", stocked("d", 25, 15, 10), LevelLow},
		{"twice threshold", stocked("e", 20, 0, 10), LevelModerate},
		{"above twice threshold", stocked("f", 21, 0, 10), LevelGood},
		{"over reserved", stocked("g", 3, 9, 2), LevelOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelOf(tt.product))
		})
	}
}

func TestAlerts(t *testing.T) {
	products := []models.Product{
		{ID: "untracked", Name: "Untracked"},
		stocked("out", 2, 2, 10),
		stocked("good", 150, 5, 20),
		stocked("low", 8, 2, 10),
		stocked("moderate", 15, 0, 10),
		stocked("moderate-high", 16, 0, 10),
	}

	alerts := Alerts(products)
	require.Len(t, alerts, 3)

	assert.Equal(t, "out", alerts[0].ProductID)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, LevelOut, alerts[0].Level)
	assert.Equal(t, 30, alerts[0].Restock)
	assert.Contains(t, alerts[0].Message, "OUT OF STOCK: Product out")

	assert.Equal(t, "low", alerts[1].ProductID)
	assert.Equal(t, SeverityWarning, alerts[1].Severity)
	assert.Equal(t, 6, alerts[1].Available)
	assert.Equal(t, 10, alerts[1].Threshold)
	assert.Contains(t, alerts[1].Message, "only 6 units remaining")

	assert.Equal(t, "moderate", alerts[2].ProductID)
	assert.Equal(t, SeverityNotice, alerts[2].Severity)
	assert.Equal(t, LevelModerate, alerts[2].Level)
	assert.Zero(t, alerts[2].Restock)
}

func TestAlerts_NothingTracked(t *testing.T) {
	assert.Empty(t, Alerts([]models.Product{{ID: "a"}, {ID: "b", InStock: true}}))
	assert.Empty(t, Alerts(nil))
}

func TestHealth(t *testing.T) {
	report := Health([]models.Product{
		{ID: "untracked"},
		stocked("good", 150, 5, 20),
		stocked("good2", 120, 3, 15),
		stocked("low", 8, 2, 10),
		stocked("out", 0, 0, 10),
	})

	assert.Equal(t, Report{
		Total:          5,
		Tracked:        4,
		Healthy:        2,
		Warning:        1,
		Critical:       1,
		HealthyPercent: 50,
	}, report)

	assert.Equal(t, Report{Total: 1}, Health([]models.Product{{ID: "untracked"}}))
}
