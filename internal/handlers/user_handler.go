package handlers

import (
	"wtwr/internal/apperrors"
	"wtwr/internal/middleware"
	"wtwr/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the current user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes; all require authentication.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users", auth)
	userRoutes.Get("/me", h.HandleGetCurrentUser)
	userRoutes.Patch("/me", h.HandleUpdateProfile)
}

// HandleGetCurrentUser returns the authenticated user's record.
func (h *UserHandler) HandleGetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetCurrentUser(userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for profile updates.
// Only name and avatar are mutable through this path.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// HandleUpdateProfile updates the caller's name and avatar.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := checkStruct(h.validate, req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(userID, req.Name, req.Avatar)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
