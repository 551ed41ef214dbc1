package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"homeMatch/business/recommend"
	"homeMatch/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

var _ recommend.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// One query materializes the candidates with their common specs so the
// scorer never reads the database mid-loop. The inner select bounds
// the candidate count before the join fans out.
const candidateQuery = `
SELECT p.product_id, p.model_code, p.product_name, p.price, s.spec_key, s.spec_value
FROM (
    SELECT product_id, model_code, product_name, price
    FROM products
    WHERE status = ? AND price > 0 AND main_category = ?
    ORDER BY price ASC, product_id ASC
    LIMIT ?
) p
LEFT JOIN product_specs s
  ON s.product_id = p.product_id
 AND s.spec_type = ?
 AND s.spec_value IS NOT NULL
 AND s.spec_value <> ''
 AND LOWER(s.spec_value) <> 'nan'
ORDER BY p.price ASC, p.product_id ASC`

func (r *ProductRepository) CandidatesByCategory(ctx context.Context, category string, limit int) ([]domain.CandidateProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := r.DB.WithContext(ctx).
		Raw(candidateQuery, domain.ProductStatusOnSale, category, limit, domain.SpecTypeCommon).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates for %s: %w", category, err)
	}
	defer rows.Close()

	var (
		candidates []domain.CandidateProduct
		current    *domain.CandidateProduct
	)
	for rows.Next() {
		var (
			productID   uint64
			modelCode   sql.NullString
			productName sql.NullString
			price       float64
			specKey     sql.NullString
			specValue   sql.NullString
		)
		if err := rows.Scan(&productID, &modelCode, &productName, &price, &specKey, &specValue); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}

		if current == nil || current.ProductID != productID {
			candidates = append(candidates, domain.CandidateProduct{
				ProductID:      productID,
				ModelCode:      modelCode.String,
				ProductName:    productName.String,
				Price:          price,
				CommonFeatures: make(map[string]string),
			})
			current = &candidates[len(candidates)-1]
		}

		if specKey.Valid && specValue.Valid {
			current.CommonFeatures[specKey.String] = specValue.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate rows: %w", err)
	}

	return candidates, nil
}
