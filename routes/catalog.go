package routes

import (
	"errors"

	"onlinestore/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type categoryRequest struct {
	CategoryName string `json:"category_name" validate:"required"`
}

type productRequest struct {
	Name        string          `json:"product_name" validate:"required"`
	Price       decimal.Decimal `json:"product_price"`
	Description string          `json:"product_description"`
	ImagePath   string          `json:"product_image_path"`
	CategoryIDs []uint          `json:"category_ids"`
}

type categoryLinkRequest struct {
	OldCategoryID *uint `json:"old_category_id" validate:"required"`
	NewCategoryID *uint `json:"new_category_id" validate:"required"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing login or password",
		})
	}

	user, err := h.store.Authenticate(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid login or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to authenticate",
		})
	}

	return c.JSON(fiber.Map{
		"user_id":   user.ID,
		"user_role": user.Role,
	})
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	categories, err := h.store.Categories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}
	return c.JSON(categories)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category_name is required",
		})
	}

	if err := h.store.AddCategory(req.CategoryName); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created",
	})
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	if err := h.store.DeleteCategory(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	h.events.publish(storeEvent{Event: "category_deleted", ID: uint(id)})

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	categoryID := c.QueryInt("category_id")
	if categoryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid category_id",
		})
	}

	products, err := h.store.ProductsByCategory(uint(categoryID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load products",
		})
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil || !req.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "product_name and a positive product_price are required",
		})
	}

	product, err := h.store.AddProduct(store.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImagePath:   req.ImagePath,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidProduct) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid product data",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	h.events.publish(storeEvent{Event: "product_created", ID: product.ID})

	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	if err := h.store.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}

	h.events.publish(storeEvent{Event: "product_deleted", ID: uint(id)})

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) updateProductField(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if len(fields) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "PATCH must contain exactly one field to update",
		})
	}

	for field, value := range fields {
		if err := h.store.UpdateProductField(uint(id), field, value); err != nil {
			if errors.Is(err, store.ErrUnknownField) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Field cannot be updated: " + field,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update product",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Product updated",
	})
}

func (h *Handler) changeProductCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var req categoryLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing old_category_id or new_category_id",
		})
	}

	if err := h.store.ChangeProductCategory(uint(id), *req.OldCategoryID, *req.NewCategoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "New category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to change product category",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product category updated",
	})
}
