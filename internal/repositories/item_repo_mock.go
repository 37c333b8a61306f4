package repositories

import (
	"sync"
	"time"

	"wtwr/internal/apperrors"
	"wtwr/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository. It
// stores owner and liker IDs and expands them through the user repository,
// mirroring what the GORM implementation does with preloads.
type MockItemRepository struct {
	items map[string]models.ClothingItem
	likes map[string][]string // item ID -> liker IDs, insertion order
	users UserRepository
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository(users UserRepository) *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.ClothingItem),
		likes: make(map[string][]string),
		users: users,
	}
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.ClothingItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// GetAll returns all items with owner and likes expanded.
func (r *MockItemRepository) GetAll() ([]models.ClothingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.ClothingItem, 0, len(r.items))
	for id, item := range r.items {
		expanded, err := r.expand(item, r.likes[id])
		if err != nil {
			return nil, err
		}
		itemList = append(itemList, *expanded)
	}
	return itemList, nil
}

// GetByID returns an item by its ID with owner and likes expanded.
func (r *MockItemRepository) GetByID(id string) (*models.ClothingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getLocked(id)
}

// UpdateImage replaces the image URL of an existing item.
func (r *MockItemRepository) UpdateImage(id, imageURL string) (*models.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFound(itemNotFoundMessage)
	}
	item.ImageURL = imageURL
	r.items[id] = item
	return r.getLocked(id)
}

// Delete removes an item and its likes.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFound(itemNotFoundMessage)
	}
	delete(r.items, id)
	delete(r.likes, id)
	return nil
}

// AddLike adds userID to the item's likes if not already present.
func (r *MockItemRepository) AddLike(itemID, userID string) (*models.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return nil, apperrors.NewNotFound(itemNotFoundMessage)
	}
	present := false
	for _, id := range r.likes[itemID] {
		if id == userID {
			present = true
			break
		}
	}
	if !present {
		r.likes[itemID] = append(r.likes[itemID], userID)
	}
	return r.getLocked(itemID)
}

// RemoveLike removes userID from the item's likes if present.
func (r *MockItemRepository) RemoveLike(itemID, userID string) (*models.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return nil, apperrors.NewNotFound(itemNotFoundMessage)
	}
	likers := r.likes[itemID]
	for i, id := range likers {
		if id == userID {
			r.likes[itemID] = append(likers[:i], likers[i+1:]...)
			break
		}
	}
	return r.getLocked(itemID)
}

// getLocked returns the expanded item; callers must hold at least a read lock.
func (r *MockItemRepository) getLocked(id string) (*models.ClothingItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFound(itemNotFoundMessage)
	}
	return r.expand(item, r.likes[id])
}

// expand resolves the owner and liker IDs to full user records.
func (r *MockItemRepository) expand(item models.ClothingItem, likerIDs []string) (*models.ClothingItem, error) {
	owner, err := r.users.GetByID(item.OwnerID)
	if err != nil {
		return nil, err
	}
	item.Owner = *owner
	item.Likes = make([]models.User, 0, len(likerIDs))
	for _, id := range likerIDs {
		liker, err := r.users.GetByID(id)
		if err != nil {
			return nil, err
		}
		item.Likes = append(item.Likes, *liker)
	}
	return &item, nil
}
