package repositories

import (
	"errors"
	"fmt"

	"wtwr/internal/apperrors"
	"wtwr/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const itemNotFoundMessage = "Item not found"

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// Create inserts a new clothing item.
func (r *GORMItemRepository) Create(item *models.ClothingItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Omit("Owner", "Likes").Create(item).Error; err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to create item: %w", err))
	}
	return nil
}

// GetAll retrieves every item with owner and likes expanded.
func (r *GORMItemRepository) GetAll() ([]models.ClothingItem, error) {
	var items []models.ClothingItem
	if err := r.db.Preload("Owner").Preload("Likes").Find(&items).Error; err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get all items: %w", err))
	}
	return items, nil
}

// GetByID retrieves a single item with owner and likes expanded.
func (r *GORMItemRepository) GetByID(id string) (*models.ClothingItem, error) {
	var item models.ClothingItem
	err := r.db.Preload("Owner").Preload("Likes").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(itemNotFoundMessage)
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get item by ID %s: %w", id, err))
	}
	return &item, nil
}

// UpdateImage replaces the item's image URL and returns the updated record.
func (r *GORMItemRepository) UpdateImage(id, imageURL string) (*models.ClothingItem, error) {
	res := r.db.Model(&models.ClothingItem{}).Where("id = ?", id).Update("image_url", imageURL)
	if res.Error != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to update item %s: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound(itemNotFoundMessage)
	}
	return r.GetByID(id)
}

// Delete removes an item and its like associations.
func (r *GORMItemRepository) Delete(id string) error {
	item := models.ClothingItem{ID: id}
	if err := r.db.Model(&item).Association("Likes").Clear(); err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to clear likes for item %s: %w", id, err))
	}
	res := r.db.Delete(&models.ClothingItem{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to delete item %s: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound(itemNotFoundMessage)
	}
	return nil
}

// AddLike records that userID likes the item. Liking an already-liked item
// leaves the likes set unchanged.
func (r *GORMItemRepository) AddLike(itemID, userID string) (*models.ClothingItem, error) {
	item, err := r.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	for _, liker := range item.Likes {
		if liker.ID == userID {
			return item, nil
		}
	}
	var user models.User
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Requested resource not found.")
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get user %s: %w", userID, err))
	}
	if err := r.db.Model(item).Association("Likes").Append(&user); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to like item %s: %w", itemID, err))
	}
	return r.GetByID(itemID)
}

// RemoveLike removes userID from the item's likes. Removing an absent liker
// is a no-op, not an error.
func (r *GORMItemRepository) RemoveLike(itemID, userID string) (*models.ClothingItem, error) {
	item, err := r.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(item).Association("Likes").Delete(&models.User{ID: userID}); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to unlike item %s: %w", itemID, err))
	}
	return r.GetByID(itemID)
}
