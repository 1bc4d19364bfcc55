package models

import "time"

// RecommendationRecord is one recommendation shown to a user, kept so past
// picks can be listed later. Rank starts at 1 within its batch.
type RecommendationRecord struct {
	BaseModel
	UserID      string    `gorm:"index;not null" json:"user_id"`
	SessionID   string    `gorm:"index" json:"session_id"`
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Score       float64   `json:"score"`
	Reasoning   string    `json:"reasoning"`
	Rank        int       `json:"rank"`
	GeneratedAt time.Time `gorm:"index" json:"generated_at"`
}

// NewRecommendationRecords stamps one record per recommendation in rank order.
func NewRecommendationRecords(userID, sessionID string, recs []Recommendation, at time.Time) []RecommendationRecord {
	at = at.UTC()
	out := make([]RecommendationRecord, len(recs))
	for i, rec := range recs {
		out[i] = RecommendationRecord{
			BaseModel:   NewBaseModel(at),
			UserID:      userID,
			SessionID:   sessionID,
			ProductID:   rec.ProductID,
			Name:        rec.Name,
			Brand:       rec.Brand,
			Score:       rec.Score,
			Reasoning:   rec.Reasoning,
			Rank:        i + 1,
			GeneratedAt: at,
		}
	}
	return out
}
