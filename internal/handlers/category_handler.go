package handlers

import (
	"fmt"
	"log"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the category routes. Reads are public; mutations
// go through the auth middleware.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", auth, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", auth, h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", auth, h.HandleDeleteCategory)
}

// HandleGetCategories returns one page of categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 12)
	sort := c.Query("sort", "name")
	direction := c.Query("direction", "asc")

	result, err := h.service.FindAllPaged(page, size, sort, direction)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetCategoryByID returns a single category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	result, err := h.service.FindByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleCreateCategory creates a new category and returns it with the
// assigned id and a Location header.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var categoryDTO dto.CategoryDTO
	if err := c.BodyParser(&categoryDTO); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, categoryDTO); err != nil {
		return respondError(c, err)
	}

	created, err := h.service.Insert(categoryDTO)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, err)
	}

	c.Set("Location", fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateCategory updates the category addressed by the path id.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	var categoryDTO dto.CategoryDTO
	if err := c.BodyParser(&categoryDTO); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, categoryDTO); err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.Update(uint(id), categoryDTO)
	if err != nil {
		log.Printf("Error updating category %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteCategory deletes the category addressed by the path id.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	if err := h.service.Delete(uint(id)); err != nil {
		log.Printf("Error deleting category %d: %v", id, err)
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
