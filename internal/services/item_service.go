package services

import (
	"log"

	"wtwr/internal/apperrors"
	"wtwr/internal/models"
	"wtwr/internal/repositories"
)

// EventPublisher publishes catalog events to a message broker. A nil
// publisher is tolerated so the API runs without a broker.
type EventPublisher interface {
	PublishCatalogEvent(eventType string, payload map[string]interface{}) error
}

// ItemService handles business logic for clothing items: ownership checks on
// delete, set semantics on likes, and catalog event publishing.
type ItemService struct {
	itemRepo repositories.ItemRepository
	mqClient EventPublisher
}

// NewItemService creates a new ItemService. mqClient may be nil.
func NewItemService(itemRepo repositories.ItemRepository, mqClient EventPublisher) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		mqClient: mqClient,
	}
}

// CreateItem creates an item owned by ownerID and returns it with the owner
// expanded.
func (s *ItemService) CreateItem(ownerID, name, weather, imageURL string) (*models.ClothingItem, error) {
	item := &models.ClothingItem{
		Name:     name,
		Weather:  weather,
		ImageURL: imageURL,
		OwnerID:  ownerID,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	created, err := s.itemRepo.GetByID(item.ID)
	if err != nil {
		return nil, err
	}

	s.publish("item_created", map[string]interface{}{
		"item_id":  created.ID,
		"owner_id": ownerID,
		"weather":  created.Weather,
	})

	return created, nil
}

// GetItems returns the full catalog with owners and likes expanded.
func (s *ItemService) GetItems() ([]models.ClothingItem, error) {
	return s.itemRepo.GetAll()
}

// UpdateItemImage replaces an item's image URL. Any authenticated caller may
// update any item's image; there is deliberately no ownership check here,
// pending a product decision on whether updates should be owner-only.
func (s *ItemService) UpdateItemImage(itemID, imageURL string) (*models.ClothingItem, error) {
	return s.itemRepo.UpdateImage(itemID, imageURL)
}

// DeleteItem removes an item. Only the owner may delete it.
func (s *ItemService) DeleteItem(itemID, callerID string) error {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != callerID {
		return apperrors.NewForbidden("Forbidden: Not the owner")
	}
	if err := s.itemRepo.Delete(itemID); err != nil {
		return err
	}

	s.publish("item_deleted", map[string]interface{}{
		"item_id":  itemID,
		"owner_id": callerID,
	})

	return nil
}

// LikeItem adds the caller to the item's likes. Idempotent.
func (s *ItemService) LikeItem(itemID, userID string) (*models.ClothingItem, error) {
	return s.itemRepo.AddLike(itemID, userID)
}

// UnlikeItem removes the caller from the item's likes. Removing an absent
// liker succeeds and leaves the set unchanged.
func (s *ItemService) UnlikeItem(itemID, userID string) (*models.ClothingItem, error) {
	return s.itemRepo.RemoveLike(itemID, userID)
}

// publish sends a catalog event if a broker is configured. Publishing
// failures are logged and never fail the request.
func (s *ItemService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishCatalogEvent(eventType, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
