package repositories

import "wtwr/internal/models"

// ItemRepository defines the interface for clothing item data access.
// Read operations return items with Owner and Likes expanded to full user
// records. Like mutations are set semantics: adding an existing liker and
// removing an absent one are both no-ops.
type ItemRepository interface {
	Create(item *models.ClothingItem) error
	GetAll() ([]models.ClothingItem, error)
	GetByID(id string) (*models.ClothingItem, error)
	UpdateImage(id, imageURL string) (*models.ClothingItem, error)
	Delete(id string) error
	AddLike(itemID, userID string) (*models.ClothingItem, error)
	RemoveLike(itemID, userID string) (*models.ClothingItem, error)
}
