package uploads

import (
	"log"
	"mime/multipart"
	"path/filepath"

	"questboard/src/core/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ObjectStore stores an object and returns its public URL. Satisfied by
// utils.Store.
type ObjectStore interface {
	Upload(path string, file *multipart.FileHeader) (string, error)
}

type Handler struct {
	Store ObjectStore
}

func NewHandler(store ObjectStore) *Handler {
	return &Handler{Store: store}
}

// objectName generates a random object name keeping the original extension.
func objectName(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}

// Upload stores the posted file under a random object name and returns
// its public URL.
func (h *Handler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "No file in request", err)
	}

	fileURL, err := h.Store.Upload(objectName(file.Filename), file)
	if err != nil {
		log.Printf("storage upload failed: %v", err)
		return helpers.HandleError(c, fiber.StatusBadGateway, "File upload failed", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "File uploaded successfully", fiber.Map{
		"url": fileURL,
	})
}
