package repositories

import "wtwr/internal/models"

// UserRepository defines the interface for user data access. Implementations
// classify store-level failures (duplicate key, missing row) into taxonomy
// errors so raw store errors never travel past this boundary.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(id, name, avatar string) (*models.User, error)
}
