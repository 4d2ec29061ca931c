package routes

import (
	"errors"

	"onlinestore/store"

	"github.com/gofiber/fiber/v2"
)

type cartRequest struct {
	UserID    uint `json:"user_id" validate:"required,gt=0"`
	ProductID uint `json:"product_id" validate:"required,gt=0"`
}

type orderRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid user_id or product_id",
		})
	}

	if err := h.store.AddToCart(req.UserID, req.ProductID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrProductNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add to cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product added to cart",
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid user_id",
		})
	}

	cart, err := h.store.CartContents(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load cart",
		})
	}

	return c.JSON(cart)
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	productID := c.QueryInt("product_id")
	if userID <= 0 || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid user_id or product_id",
		})
	}

	if err := h.store.RemoveFromCart(uint(userID), uint(productID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove from cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
	})
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid user_id",
		})
	}

	if err := h.store.PlaceOrder(req.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to place order",
		})
	}

	h.events.publish(storeEvent{Event: "order_placed", UserID: req.UserID})

	return c.JSON(fiber.Map{
		"message": "Order placed",
	})
}
