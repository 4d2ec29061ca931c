package routes

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// uploadImage stores a multipart image under a uuid filename and returns the
// relative path the client saves on the product row.
func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext

	if err := c.SaveFile(file, filepath.Join(h.imagesDir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"image_path": "/images/" + filename,
	})
}
