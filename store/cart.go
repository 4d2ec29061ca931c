package store

import (
	"onlinestore/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type CartItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"product_name"`
	Price     decimal.Decimal `json:"product_price"`
	ImagePath string          `json:"product_image_path"`
}

type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total_price"`
}

// AddToCart inserts the (user, product) pair after checking both sides exist.
// Adding a product that is already in the cart is a no-op.
func (s *Store) AddToCart(userID, productID uint) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}

	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProductNotFound
	}

	entry := models.CartEntry{UserID: userID, ProductID: productID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// CartContents joins the user's cart entries to product rows and sums the
// prices.
func (s *Store) CartContents(userID uint) (*Cart, error) {
	items := make([]CartItem, 0)
	err := s.db.Table("cart_entries").
		Select("products.id AS product_id, products.name AS name, products.price AS price, products.image_path AS image_path").
		Joins("JOIN products ON products.id = cart_entries.product_id").
		Where("cart_entries.user_id = ?", userID).
		Order("products.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return &Cart{Items: items, Total: total}, nil
}

// RemoveFromCart deletes one pair. Success does not depend on a row having
// existed.
func (s *Store) RemoveFromCart(userID, productID uint) error {
	return s.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartEntry{}).Error
}

// PlaceOrder converts a cart into a purchase: every product in the cart is
// removed from the catalog and the cart is cleared, all inside one
// transaction. An empty cart commits as a successful no-op. Any failure rolls
// the whole operation back, so no partial purchase is ever visible.
//
// Buying a product deletes its row outright; there is no order history table
// in the schema this server fronts.
func (s *Store) PlaceOrder(userID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var productIDs []uint
	if err := tx.Model(&models.CartEntry{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &productIDs).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(productIDs) == 0 {
		return tx.Commit().Error
	}

	for _, productID := range productIDs {
		if _, err := deleteProduct(tx, productID); err != nil {
			tx.Rollback()
			return err
		}
	}

	// deleteProduct already dropped the entries for the purchased products;
	// this clears anything else still attached to the user.
	if err := tx.Where("user_id = ?", userID).Delete(&models.CartEntry{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
