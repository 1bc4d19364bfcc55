package models

import "time"

// ReservationTTL is how long reserved units are held before they return to
// available stock.
const ReservationTTL = time.Hour

// Reservation holds units of a tracked product for a user until ExpiresAt.
type Reservation struct {
	BaseModel
	ProductID string    `gorm:"index;not null" json:"product_id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

// Expired reports whether the hold has lapsed at now.
func (r Reservation) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
