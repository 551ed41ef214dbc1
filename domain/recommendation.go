package domain

// ScoredProduct is one candidate after scoring, before trimming.
type ScoredProduct struct {
	ProductID   uint64  `json:"product_id"`
	ModelCode   string  `json:"model_code,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Price       float64 `json:"price"`
	Score       int     `json:"score"`
}

// ProductScore is the trimmed top-K entry exposed to callers.
type ProductScore struct {
	ProductID uint64 `json:"product_id"`
	Score     int    `json:"score"`
}

type CategoryRecommendation struct {
	Category      string         `json:"category"`
	CategoryScore float64        `json:"category_score"`
	TopProducts   []ProductScore `json:"top_products"`
}

// RecommendationResult is the live-path response. Success is false only
// when no taste archetype matched, in which case Categories is empty.
type RecommendationResult struct {
	TasteID    uint64                   `json:"taste_id,omitempty"`
	Success    bool                     `json:"success"`
	FromCache  bool                     `json:"from_cache"`
	Categories []CategoryRecommendation `json:"categories"`
}
