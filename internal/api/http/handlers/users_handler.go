package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-issues/internal/api/dto"
	"github.com/spec-kit/civic-issues/internal/service"
	apperrors "github.com/spec-kit/civic-issues/pkg/util"
)

// UsersHandler exposes the user endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid request body", nil)
	}

	user, err := h.service.Create(c.Context(), service.UserCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user, 0))
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, counts, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users, counts))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, count, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, count))
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid request body", nil)
	}

	user, count, err := h.service.Update(c.Context(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user, count))
}

// Delete handles DELETE /users/:id. Issues reported by the user are left in
// place with their reference intact.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
