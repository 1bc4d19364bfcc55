// Package inventory classifies product stock, raises restock alerts and holds
// reservations against available units.
package inventory

import (
	"fmt"

	"github.com/example/aromance/internal/models"
)

// Level is the stock class of a product.
type Level string

const (
	LevelUntracked Level = "untracked"
	LevelOut       Level = "out_of_stock"
	LevelLow       Level = "low_stock"
	LevelModerate  Level = "moderate_stock"
	LevelGood      Level = "good_stock"
)

// LevelOf classifies the available stock of p against its threshold: none is
// out, up to the threshold is low, up to twice the threshold is moderate.
func LevelOf(p models.Product) Level {
	if !p.Tracked() {
		return LevelUntracked
	}
	available, threshold := p.Available(), p.MinStockThreshold
	switch {
	case available == 0:
		return LevelOut
	case available <= threshold:
		return LevelLow
	case available <= 2*threshold:
		return LevelModerate
	default:
		return LevelGood
	}
}

// Severity ranks an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityNotice   Severity = "notice"
)

// RestockFactor multiplies the threshold to suggest a restock quantity.
const RestockFactor = 3

// Alert is one product that needs restocking attention.
type Alert struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Severity  Severity `json:"severity"`
	Level     Level    `json:"level"`
	Available int      `json:"available"`
	Threshold int      `json:"threshold"`
	Restock   int      `json:"restock"`
	Message   string   `json:"message"`
}

// Alerts returns an alert for every tracked product that is out of stock, at
// or below its threshold, or within one and a half thresholds. Catalog order
// is kept.
func Alerts(products []models.Product) []Alert {
	var out []Alert
	for _, p := range products {
		if !p.Tracked() {
			continue
		}
		available, threshold := p.Available(), p.MinStockThreshold
		alert := Alert{
			ProductID: p.ID,
			Name:      p.Name,
			Level:     LevelOf(p),
			Available: available,
			Threshold: threshold,
		}
		switch {
		case available == 0:
			alert.Severity = SeverityCritical
			alert.Restock = threshold * RestockFactor
			alert.Message = fmt.Sprintf("OUT OF STOCK: %s, restock required", p.Name)
		case available <= threshold:
			alert.Severity = SeverityWarning
			alert.Restock = threshold * RestockFactor
			alert.Message = fmt.Sprintf("LOW STOCK: %s, only %d units remaining", p.Name, available)
		case 2*available <= 3*threshold:
			alert.Severity = SeverityNotice
			alert.Message = fmt.Sprintf("MODERATE STOCK: %s, %d units, consider restocking soon", p.Name, available)
		default:
			continue
		}
		out = append(out, alert)
	}
	return out
}

// Report summarises stock health across a catalog. Percentages cover tracked
// products only.
type Report struct {
	Total          int     `json:"total"`
	Tracked        int     `json:"tracked"`
	Healthy        int     `json:"healthy"`
	Warning        int     `json:"warning"`
	Critical       int     `json:"critical"`
	HealthyPercent float64 `json:"healthy_percent"`
}

// Health counts products per stock class.
func Health(products []models.Product) Report {
	r := Report{Total: len(products)}
	for _, p := range products {
		switch LevelOf(p) {
		case LevelUntracked:
			continue
		case LevelGood:
			r.Healthy++
		case LevelModerate, LevelLow:
			r.Warning++
		case LevelOut:
			r.Critical++
		}
		r.Tracked++
	}
	if r.Tracked > 0 {
		r.HealthyPercent = float64(r.Healthy) / float64(r.Tracked) * 100
	}
	return r
}
