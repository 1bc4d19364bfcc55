package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/catalog"
	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/inventory"
	"github.com/example/aromance/internal/logger"
	"github.com/example/aromance/internal/models"
)

// StockNotifier is told about restock alerts.
type StockNotifier interface {
	NotifyStockAlerts(ctx context.Context, alerts []inventory.Alert) error
}

// StockStatus pairs a product with its stock class.
type StockStatus struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Level     inventory.Level `json:"level"`
	Stock     int             `json:"stock"`
	Reserved  int             `json:"reserved"`
	Available int             `json:"available"`
	Threshold int             `json:"threshold"`
	InStock   bool            `json:"in_stock"`
}

// StockReport is the stock class of every product plus the health summary.
type StockReport struct {
	Products []StockStatus    `json:"products"`
	Health   inventory.Report `json:"health"`
}

// InventoryService reports stock health, raises restock alerts and manages
// reservations.
type InventoryService struct {
	catalog  catalog.Store
	ledger   inventory.Ledger
	notifier StockNotifier
}

// NewInventoryService creates a new InventoryService. ledger and notifier may
// be nil; reservations then fail with a KindConfig error.
func NewInventoryService(store catalog.Store, ledger inventory.Ledger, notifier StockNotifier) *InventoryService {
	return &InventoryService{catalog: store, ledger: ledger, notifier: notifier}
}

// Status classifies every product and logs products that are out of stock.
func (s *InventoryService) Status(ctx context.Context) (*StockReport, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		Products: make([]StockStatus, 0, len(products)),
		Health:   inventory.Health(products),
	}
	for _, p := range products {
		p = p.Normalize()
		level := inventory.LevelOf(p)
		if level == inventory.LevelOut {
			logger.Warn().Str("product", p.ID).Msg("product out of stock")
		}
		report.Products = append(report.Products, StockStatus{
			ProductID: p.ID,
			Name:      p.Name,
			Level:     level,
			Stock:     p.StockQuantity,
			Reserved:  p.ReservedQuantity,
			Available: p.Available(),
			Threshold: p.MinStockThreshold,
			InStock:   p.InStock,
		})
	}

	logger.Info().
		Int("tracked", report.Health.Tracked).
		Int("healthy", report.Health.Healthy).
		Int("warning", report.Health.Warning).
		Int("critical", report.Health.Critical).
		Msg("inventory health checked")

	return report, nil
}

// Alerts returns the current restock alerts. With notify set, a non-empty
// list is sent to the stock notifier and a delivery failure is returned.
func (s *InventoryService) Alerts(ctx context.Context, notify bool) ([]inventory.Alert, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	alerts := inventory.Alerts(products)
	if notify && len(alerts) > 0 {
		if s.notifier == nil {
			return alerts, errx.Configf("stock alerts need a configured notifier")
		}
		if err := s.notifier.NotifyStockAlerts(ctx, alerts); err != nil {
			return alerts, err
		}
		logger.Info().Int("count", len(alerts)).Msg("stock alerts sent")
	}
	return alerts, nil
}

// Reserve holds quantity units of a product for userID.
func (s *InventoryService) Reserve(ctx context.Context, productID, userID string, quantity int) (*models.Reservation, error) {
	if s.ledger == nil {
		return nil, errx.Configf("reservations need the postgres catalog")
	}
	r, err := s.ledger.Reserve(ctx, productID, userID, quantity)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("reservation", r.ID.String()).
		Str("product", productID).
		Str("user", userID).
		Int("quantity", quantity).
		Msg("stock reserved")
	return r, nil
}

// Release returns the units held by a reservation.
func (s *InventoryService) Release(ctx context.Context, id uuid.UUID) error {
	if s.ledger == nil {
		return errx.Configf("reservations need the postgres catalog")
	}
	return s.ledger.Release(ctx, id)
}

// ReleaseExpired drops every lapsed reservation.
func (s *InventoryService) ReleaseExpired(ctx context.Context) (int, error) {
	if s.ledger == nil {
		return 0, errx.Configf("reservations need the postgres catalog")
	}
	return s.ledger.ReleaseExpired(ctx)
}
