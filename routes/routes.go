package routes

import (
	"onlinestore/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Handler wires the HTTP surface to the store. Every multi-step mutation runs
// inside the store's own transaction; handlers only translate parameters in
// and status codes out.
type Handler struct {
	store     *store.Store
	events    *eventHub
	imagesDir string
}

func SetupRoutes(app *fiber.App, st *store.Store, imagesDir string) {
	// Prices and totals render as JSON numbers, matching the clients.
	decimal.MarshalJSONWithoutQuotes = true

	h := &Handler{
		store:     st,
		events:    newEventHub(),
		imagesDir: imagesDir,
	}
	go h.events.run()

	app.Get("/ws", h.events.eventFeed())

	app.Post("/login", h.login)

	app.Get("/categories", h.getCategories)
	app.Post("/categories", h.createCategory)
	app.Delete("/categories/:id", h.deleteCategory)

	app.Get("/products", h.getProducts)
	app.Post("/products", h.createProduct)
	app.Delete("/products/:id", h.deleteProduct)
	app.Patch("/products/:id", h.updateProductField)
	app.Patch("/products/:id/category_link", h.changeProductCategory)

	app.Get("/cart", h.getCart)
	app.Post("/cart", h.addToCart)
	app.Delete("/cart", h.removeFromCart)
	app.Post("/order", h.placeOrder)

	app.Post("/upload/image", h.uploadImage)
}
