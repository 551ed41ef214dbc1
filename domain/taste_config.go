package domain

import (
	"time"

	"gorm.io/datatypes"
)

// TasteConfig is one taste archetype row. The representative_* columns
// drive classification; the recommended_* JSON columns are the
// precomputed cache written only by the batch rebuild job.
type TasteConfig struct {
	TasteID                    uint64 `gorm:"column:taste_id;primaryKey" json:"taste_id"`
	RepresentativeVibe         string `gorm:"column:representative_vibe;not null" json:"representative_vibe"`
	RepresentativeHousehold    int    `gorm:"column:representative_household_size;not null" json:"representative_household_size"`
	RepresentativeHasPet       bool   `gorm:"column:representative_has_pet;not null" json:"representative_has_pet"`
	RepresentativePriority     string `gorm:"column:representative_priority;not null" json:"representative_priority"`
	RepresentativeBudgetLevel  string `gorm:"column:representative_budget_level;not null" json:"representative_budget_level"`
	Description                string `gorm:"column:description;type:text" json:"description"`
	IsActive                   bool   `gorm:"column:is_active;default:true" json:"is_active"`
	RecommendedCategories      datatypes.JSONSlice[string]                 `gorm:"column:recommended_categories;type:jsonb" json:"recommended_categories"`
	IllSuitedCategories        datatypes.JSONSlice[string]                 `gorm:"column:ill_suited_categories;type:jsonb" json:"ill_suited_categories"`
	CategoryScores             datatypes.JSONType[map[string]float64]      `gorm:"column:category_scores;type:jsonb" json:"category_scores"`
	RecommendedProducts        datatypes.JSONType[map[string][]uint64]     `gorm:"column:recommended_products;type:jsonb" json:"recommended_products"`
	RecommendedProductScores   datatypes.JSONType[map[string][]int]        `gorm:"column:recommended_product_scores;type:jsonb" json:"recommended_product_scores"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TasteConfig) TableName() string {
	return "taste_config"
}

// Traits extracts the five attributes used for classification.
func (t *TasteConfig) Traits() TasteProfile {
	return TasteProfile{
		Vibe:          t.RepresentativeVibe,
		HouseholdSize: t.RepresentativeHousehold,
		HasPet:        t.RepresentativeHasPet,
		Priority:      t.RepresentativePriority,
		BudgetLevel:   t.RepresentativeBudgetLevel,
	}
}

// SelectedCategories returns recommended_categories with ill-suited
// ones removed, preserving the stored order.
func (t *TasteConfig) SelectedCategories() []string {
	if len(t.RecommendedCategories) == 0 {
		return nil
	}

	banned := make(map[string]struct{}, len(t.IllSuitedCategories))
	for _, c := range t.IllSuitedCategories {
		banned[c] = struct{}{}
	}

	selected := make([]string, 0, len(t.RecommendedCategories))
	for _, c := range t.RecommendedCategories {
		if _, skip := banned[c]; skip {
			continue
		}
		selected = append(selected, c)
	}

	return selected
}

// CachedRecommendation returns the precomputed top products for a
// category. ok is false when the category has no cache entry, and
// ErrCacheInconsistent is returned when the ID list and score list
// disagree in length.
func (t *TasteConfig) CachedRecommendation(category string) ([]uint64, []int, bool, error) {
	products := t.RecommendedProducts.Data()
	scores := t.RecommendedProductScores.Data()

	ids, ok := products[category]
	if !ok {
		return nil, nil, false, nil
	}

	scoreList := scores[category]
	if len(ids) != len(scoreList) {
		return nil, nil, false, ErrCacheInconsistent
	}

	return ids, scoreList, true, nil
}
