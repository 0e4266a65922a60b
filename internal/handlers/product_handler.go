package handlers

import (
	"fmt"
	"log"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// go through the auth middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleGetProducts returns one page of products, category sets included.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 12)
	sort := c.Query("sort", "name")
	direction := c.Query("direction", "asc")

	result, err := h.service.FindAllPaged(page, size, sort, direction)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
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

// HandleCreateProduct creates a new product and returns it with the
// assigned id and a Location header. Referenced category ids must resolve.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var productDTO dto.ProductDTO
	if err := c.BodyParser(&productDTO); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, productDTO); err != nil {
		return respondError(c, err)
	}

	created, err := h.service.Insert(productDTO)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}

	c.Set("Location", fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct updates the product addressed by the path id.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	var productDTO dto.ProductDTO
	if err := c.BodyParser(&productDTO); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, productDTO); err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.Update(uint(id), productDTO)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes the product addressed by the path id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	if err := h.service.Delete(uint(id)); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
