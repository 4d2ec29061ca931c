package store

import (
	"log"

	"onlinestore/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategorySummary struct {
	CategoryID       uint   `json:"category_id"`
	CategoryName     string `json:"category_name"`
	NumberOfProducts int    `json:"number_of_products"`
}

type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImagePath   string
	CategoryIDs []uint
}

// Columns a PATCH on a product may touch. Caller-supplied field names never
// reach the SQL text; they only select an entry here.
var updatableProductColumns = map[string]string{
	"product_name":        "name",
	"product_price":       "price",
	"product_description": "description",
	"product_image_path":  "image_path",
}

// Categories returns every category with its product count.
func (s *Store) Categories() ([]CategorySummary, error) {
	summaries := make([]CategorySummary, 0)
	err := s.db.Table("categories").
		Select("categories.id AS category_id, categories.name AS category_name, COUNT(pc.product_id) AS number_of_products").
		Joins("LEFT JOIN product_categories pc ON pc.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ProductsByCategory lists the products linked to one category.
func (s *Store) ProductsByCategory(categoryID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.db.
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", categoryID).
		Order("products.id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// AddCategory inserts a category, ignoring the insert when the name already
// exists.
func (s *Store) AddCategory(name string) error {
	category := models.Category{Name: name}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
}

// DeleteCategory removes a category and cascades to the products that are
// linked to no other category. Products still reachable through another
// category survive with their other links intact. The whole cascade is one
// transaction.
func (s *Store) DeleteCategory(categoryID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// Products whose only link is to the category being deleted.
	var exclusiveIDs []uint
	err := tx.Raw(`
		SELECT pc.product_id
		FROM product_categories pc
		LEFT JOIN product_categories other
			ON other.product_id = pc.product_id AND other.category_id <> ?
		WHERE pc.category_id = ?
		GROUP BY pc.product_id
		HAVING COUNT(other.category_id) = 0`,
		categoryID, categoryID).Scan(&exclusiveIDs).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, productID := range exclusiveIDs {
		if _, err := deleteProduct(tx, productID); err != nil {
			tx.Rollback()
			return err
		}
	}

	// Links from surviving products to this category go away with it.
	if err := tx.Where("category_id = ?", categoryID).Delete(&models.ProductCategory{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.Category{}, categoryID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// AddProduct inserts a product and links it to the given categories inside
// one transaction. Unknown category ids are skipped with a warning rather
// than failing the insert.
func (s *Store) AddProduct(input ProductInput) (*models.Product, error) {
	if input.Name == "" || !input.Price.IsPositive() {
		return nil, ErrInvalidProduct
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	product := models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImagePath:   input.ImagePath,
	}
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, categoryID := range input.CategoryIDs {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if count == 0 {
			log.Printf("store: category %d not found, skipping link for product %d", categoryID, product.ID)
			continue
		}

		link := models.ProductCategory{ProductID: product.ID, CategoryID: categoryID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes one product and its link and cart rows.
func (s *Store) DeleteProduct(productID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	rows, err := deleteProduct(tx, productID)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// deleteProduct is the shared delete step: link rows and cart rows first, the
// product row last. Checkout and the category cascade reuse it so a product
// never leaves dangling references behind. Returns the number of product rows
// deleted.
func deleteProduct(tx *gorm.DB, productID uint) (int64, error) {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.CartEntry{}).Error; err != nil {
		return 0, err
	}
	res := tx.Delete(&models.Product{}, productID)
	return res.RowsAffected, res.Error
}

// UpdateProductField updates a single allow-listed column.
func (s *Store) UpdateProductField(productID uint, field string, value any) error {
	column, ok := updatableProductColumns[field]
	if !ok {
		return ErrUnknownField
	}
	return s.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update(column, value).Error
}

// ChangeProductCategory moves a product's link from one category to another
// in a single transaction. Equal ids are a no-op; inserting a link that
// already exists is ignored.
func (s *Store) ChangeProductCategory(productID, oldCategoryID, newCategoryID uint) error {
	if oldCategoryID == newCategoryID {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", newCategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("product_id = ? AND category_id = ?", productID, oldCategoryID).
		Delete(&models.ProductCategory{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	link := models.ProductCategory{ProductID: productID, CategoryID: newCategoryID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
