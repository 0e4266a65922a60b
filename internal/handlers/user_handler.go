package handlers

import (
	"fmt"
	"log"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes; the whole group requires
// authentication.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users", auth)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers returns one page of users, passwords never included.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 12)
	sort := c.Query("sort", "first_name")
	direction := c.Query("direction", "asc")

	result, err := h.service.FindAllPaged(page, size, sort, direction)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetUserByID returns a single user.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
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

// HandleCreateUser creates a new user from a UserInsertDTO. The email must
// be unique and the password is hashed before it is stored.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var userDTO dto.UserInsertDTO
	if err := c.BodyParser(&userDTO); err != nil {
		log.Printf("Error parsing user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, userDTO); err != nil {
		return respondError(c, err)
	}

	created, err := h.service.Insert(userDTO)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return respondError(c, err)
	}

	c.Set("Location", fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateUser updates the user addressed by the path id from a
// UserUpdateDTO. The uniqueness check excludes the addressed user, so an
// unchanged email passes.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	var userDTO dto.UserUpdateDTO
	if err := c.BodyParser(&userDTO); err != nil {
		log.Printf("Error parsing user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validateStruct(h.validate, userDTO); err != nil {
		return respondError(c, err)
	}

	updated, err := h.service.Update(uint(id), userDTO)
	if err != nil {
		log.Printf("Error updating user %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteUser deletes the user addressed by the path id.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
		})
	}

	if err := h.service.Delete(uint(id)); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
