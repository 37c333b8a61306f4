package handlers

import (
	"wtwr/internal/apperrors"
	"wtwr/internal/middleware"
	"wtwr/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for clothing items.
type ItemHandler struct {
	itemService *services.ItemService
	validate    *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the item routes. Listing is public; every
// mutation requires authentication.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Post("/", auth, h.HandleCreateItem)
	itemRoutes.Put("/:itemId", auth, h.HandleUpdateItem)
	itemRoutes.Delete("/:itemId", auth, h.HandleDeleteItem)
	itemRoutes.Put("/:itemId/likes", auth, h.HandleLikeItem)
	itemRoutes.Delete("/:itemId/likes", auth, h.HandleUnlikeItem)
}

// HandleGetItems returns the whole catalog, owners and likes expanded.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.itemService.GetItems()
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// CreateItemRequest represents the request body for item creation.
type CreateItemRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Weather  string `json:"weather" validate:"required,oneof=hot warm cold"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// HandleCreateItem creates an item owned by the caller.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := checkStruct(h.validate, req); err != nil {
		return err
	}

	item, err := h.itemService.CreateItem(userID, req.Name, req.Weather, req.ImageURL)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItemRequest represents the request body for image updates.
type UpdateItemRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// HandleUpdateItem replaces an item's image URL.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	itemID, err := parseItemID(c.Params("itemId"))
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := checkStruct(h.validate, req); err != nil {
		return err
	}

	item, err := h.itemService.UpdateItemImage(itemID, req.ImageURL)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item; only its owner may do so.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID, err := parseItemID(c.Params("itemId"))
	if err != nil {
		return err
	}
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.itemService.DeleteItem(itemID, userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Item deleted",
	})
}

// HandleLikeItem adds the caller to the item's likes.
func (h *ItemHandler) HandleLikeItem(c *fiber.Ctx) error {
	itemID, err := parseItemID(c.Params("itemId"))
	if err != nil {
		return err
	}
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.LikeItem(itemID, userID)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// HandleUnlikeItem removes the caller from the item's likes.
func (h *ItemHandler) HandleUnlikeItem(c *fiber.Ctx) error {
	itemID, err := parseItemID(c.Params("itemId"))
	if err != nil {
		return err
	}
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.UnlikeItem(itemID, userID)
	if err != nil {
		return err
	}
	return c.JSON(item)
}
