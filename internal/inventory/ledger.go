package inventory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Ledger holds units of tracked products for users. Reserve fails with
// KindNotFound for unknown products and KindConflict when the product is not
// tracked or lacks available units. Holds lapse after models.ReservationTTL.
type Ledger interface {
	Reserve(ctx context.Context, productID, userID string, quantity int) (*models.Reservation, error)
	// Release returns the held units of a reservation. Unknown ids are
	// KindNotFound.
	Release(ctx context.Context, id uuid.UUID) error
	// ReleaseExpired returns the units of every lapsed hold and reports how
	// many reservations were dropped.
	ReleaseExpired(ctx context.Context) (int, error)
}

func checkRequest(productID, userID string, quantity int) error {
	switch {
	case productID == "":
		return errx.Configf("product id is required")
	case userID == "":
		return errx.Configf("user id is required")
	case quantity < 1:
		return errx.Configf("quantity must be at least 1 (got %d)", quantity)
	}
	return nil
}

func checkStock(p models.Product, quantity int) error {
	if !p.Tracked() {
		return errx.New(errx.KindConflict, fmt.Sprintf("stock is not tracked for %s", p.ID), nil)
	}
	if available := p.Available(); available < quantity {
		return errx.New(errx.KindConflict,
			fmt.Sprintf("insufficient stock for %s: %d available, %d requested", p.ID, available, quantity), nil)
	}
	return nil
}

func newReservation(productID, userID string, quantity int, now time.Time) models.Reservation {
	r := models.Reservation{
		BaseModel: models.NewBaseModel(now),
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
	}
	r.ExpiresAt = r.CreatedAt.Add(models.ReservationTTL)
	return r
}

// Memory is a process-local Ledger over a fixed product set. It also serves
// the products with their current reserved counts, so it can stand in as a
// catalog store.
type Memory struct {
	mu           sync.Mutex
	order        []string
	products     map[string]models.Product
	reservations map[uuid.UUID]models.Reservation
	now          func() time.Time
}

// NewMemory copies products into a Memory ledger.
func NewMemory(products []models.Product) *Memory {
	m := &Memory{
		products:     make(map[string]models.Product, len(products)),
		reservations: make(map[uuid.UUID]models.Reservation),
		now:          time.Now,
	}
	for _, p := range products {
		if _, dup := m.products[p.ID]; !dup {
			m.order = append(m.order, p.ID)
		}
		m.products[p.ID] = p.Normalize()
	}
	return m
}

// Products returns the products in insertion order with current counts.
func (m *Memory) Products(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Product, 0, len(m.order))
	for _, id := range m.order {
		p := m.products[id]
		p.Notes = slices.Clone(p.Notes)
		p.LocalIngredients = slices.Clone(p.LocalIngredients)
		out = append(out, p.Normalize())
	}
	return out, nil
}

func (m *Memory) Reserve(_ context.Context, productID, userID string, quantity int) (*models.Reservation, error) {
	if err := checkRequest(productID, userID, quantity); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.releaseExpiredLocked(now)

	p, ok := m.products[productID]
	if !ok {
		return nil, errx.New(errx.KindNotFound, errx.NotFoundMessage, nil)
	}
	if err := checkStock(p, quantity); err != nil {
		return nil, err
	}

	r := newReservation(productID, userID, quantity, now)
	p.ReservedQuantity += quantity
	m.products[productID] = p.Normalize()
	m.reservations[r.ID] = r
	return &r, nil
}

func (m *Memory) Release(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return errx.New(errx.KindNotFound, errx.NotFoundMessage, nil)
	}
	m.releaseLocked(r)
	return nil
}

func (m *Memory) ReleaseExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseExpiredLocked(m.now()), nil
}

func (m *Memory) releaseExpiredLocked(now time.Time) int {
	released := 0
	for _, r := range m.reservations {
		if r.Expired(now) {
			m.releaseLocked(r)
			released++
		}
	}
	return released
}

func (m *Memory) releaseLocked(r models.Reservation) {
	delete(m.reservations, r.ID)
	if p, ok := m.products[r.ProductID]; ok {
		p.ReservedQuantity = max(p.ReservedQuantity-r.Quantity, 0)
		m.products[r.ProductID] = p.Normalize()
	}
}
