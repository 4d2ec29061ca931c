package models

import "github.com/shopspring/decimal"

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"product_id"`
	Name        string          `gorm:"not null" json:"product_name" validate:"required"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	Description string          `json:"product_description"`
	ImagePath   string          `json:"product_image_path"`
}
