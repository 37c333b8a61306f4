package handlers

import (
	"wtwr/internal/apperrors"
	"wtwr/internal/models"
	"wtwr/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles signup and signin.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/signin", h.HandleSignin)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Avatar   string `json:"avatar" validate:"required,url"`
	Email    string `json:"email" validate:"required,email"`
	// bcrypt rejects inputs over 72 bytes, so that bound is part of the
	// request schema rather than a hashing failure.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// HandleSignup registers a new user. The response never carries the
// password; a duplicate email yields Conflict.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := checkStruct(h.validate, req); err != nil {
		return err
	}

	user := models.User{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// SigninRequest represents the request body for signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleSignin authenticates a user and issues a bearer token.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := checkStruct(h.validate, req); err != nil {
		return err
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
