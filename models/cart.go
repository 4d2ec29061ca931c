package models

// CartEntry is one (user, product) pair in a persistent cart. Adding the same
// product twice keeps a single row.
type CartEntry struct {
	UserID    uint `gorm:"primaryKey" json:"user_id"`
	ProductID uint `gorm:"primaryKey" json:"product_id"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}
