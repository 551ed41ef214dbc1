package domain

import "time"

const (
	// ProductStatusOnSale is the only status eligible for scoring.
	ProductStatusOnSale = "판매중"

	// SpecTypeCommon marks the spec rows the scorer reads.
	SpecTypeCommon = "COMMON"
)

type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint64    `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	ModelCode    string    `gorm:"column:model_code" json:"model_code"`
	ProductName  string    `gorm:"column:product_name;type:text" json:"product_name"`
	MainCategory string    `gorm:"column:main_category;index;not null" json:"main_category"`
	Status       string    `gorm:"column:status;not null" json:"status"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

type ProductSpec struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint64 `gorm:"column:product_id;index;not null" json:"product_id"`
	SpecKey   string `gorm:"column:spec_key;not null" json:"spec_key"`
	SpecValue string `gorm:"column:spec_value;type:text" json:"spec_value"`
	SpecType  string `gorm:"column:spec_type;not null" json:"spec_type"`
}

func (ProductSpec) TableName() string {
	return "product_specs"
}

// CandidateProduct is a catalog row materialized for scoring: the
// product joined with its common spec rows, keyed by raw spec key.
type CandidateProduct struct {
	ProductID      uint64            `json:"product_id"`
	ModelCode      string            `json:"model_code"`
	ProductName    string            `json:"product_name"`
	Price          float64           `json:"price"`
	CommonFeatures map[string]string `json:"common_features"`
}
