package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"homeMatch/business/recommend"
	"homeMatch/business/taste"
	"homeMatch/domain"
)

type TasteConfigRepository struct {
	DB *gorm.DB
}

var (
	_ taste.TasteConfigRepository = (*TasteConfigRepository)(nil)
	_ recommend.TasteConfigWriter = (*TasteConfigRepository)(nil)
)

func NewTasteConfigRepository(db *gorm.DB) *TasteConfigRepository {
	return &TasteConfigRepository{
		DB: db,
	}
}

func (r *TasteConfigRepository) FindByTraits(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var config domain.TasteConfig
	err := r.DB.WithContext(ctx).
		Where("representative_vibe = ?", profile.Vibe).
		Where("representative_household_size = ?", profile.HouseholdSize).
		Where("representative_has_pet = ?", profile.HasPet).
		Where("representative_priority = ?", profile.Priority).
		Where("representative_budget_level = ?", profile.BudgetLevel).
		Where("is_active = ?", true).
		Order("taste_id ASC").
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTasteNotFound
		}
		return nil, fmt.Errorf("failed to find taste config by traits: %w", err)
	}

	return &config, nil
}

func (r *TasteConfigRepository) FindByTraitsIgnoringPriority(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var config domain.TasteConfig
	err := r.DB.WithContext(ctx).
		Where("representative_vibe = ?", profile.Vibe).
		Where("representative_household_size = ?", profile.HouseholdSize).
		Where("representative_has_pet = ?", profile.HasPet).
		Where("representative_budget_level = ?", profile.BudgetLevel).
		Where("is_active = ?", true).
		Order("taste_id ASC").
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTasteNotFound
		}
		return nil, fmt.Errorf("failed to find taste config without priority: %w", err)
	}

	return &config, nil
}

func (r *TasteConfigRepository) FindAllActive(ctx context.Context) ([]domain.TasteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var configs []domain.TasteConfig
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("taste_id ASC").
		Find(&configs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active taste configs: %w", err)
	}

	return configs, nil
}

func (r *TasteConfigRepository) FindByID(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var config domain.TasteConfig
	err := r.DB.WithContext(ctx).
		Where("taste_id = ?", tasteID).
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTasteNotFound
		}
		return nil, fmt.Errorf("failed to find taste config %d: %w", tasteID, err)
	}

	return &config, nil
}

// UpdateRecommendedProducts replaces the precomputed cache columns for
// one archetype in a single update.
func (r *TasteConfigRepository) UpdateRecommendedProducts(ctx context.Context, tasteID uint64, products map[string][]uint64, scores map[string][]int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.TasteConfig{}).
		Where("taste_id = ?", tasteID).
		Updates(map[string]any{
			"recommended_products":       datatypes.NewJSONType(products),
			"recommended_product_scores": datatypes.NewJSONType(scores),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update recommended products for taste %d: %w", tasteID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTasteNotFound
	}

	return nil
}
