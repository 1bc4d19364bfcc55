package models

// Recommendation is one ranked, annotated product.
type Recommendation struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Family    string  `json:"family"`
	Price     int64   `json:"price"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	Heritage  bool    `json:"heritage"`
	Certified bool    `json:"certified"`
}
