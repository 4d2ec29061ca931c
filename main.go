package main

import (
	"log"
	"os"

	"onlinestore/config"
	"onlinestore/db"
	"onlinestore/routes"
	"onlinestore/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	// Connect to the database
	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create images directory if it doesn't exist
	if _, err := os.Stat(cfg.ImagesDir); os.IsNotExist(err) {
		os.MkdirAll(cfg.ImagesDir, 0755)
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve product images
	app.Static("/images", cfg.ImagesDir)

	// Setup routes
	routes.SetupRoutes(app, store.New(gdb), cfg.ImagesDir)

	// Start server
	log.Fatal(app.Listen(cfg.Addr))
}
