package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"category_id"`
	Name string `gorm:"uniqueIndex;not null" json:"category_name" validate:"required"`
}

// ProductCategory links products to categories many-to-many. Link rows are
// deleted explicitly inside the transactions that remove either side, so the
// schema works the same whether or not the backend enforces foreign keys.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey" json:"product_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
