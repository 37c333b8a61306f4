package repositories

import (
	"errors"
	"fmt"

	"wtwr/internal/apperrors"
	"wtwr/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
// The *gorm.DB must be opened with TranslateError so duplicate-key
// violations surface as gorm.ErrDuplicatedKey.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email is reported as Conflict.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflict("Email already exists")
		}
		return apperrors.NewInternal(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

// GetByEmail retrieves a user by email, including the password hash.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Requested resource not found.")
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get user by email: %w", err))
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Requested resource not found.")
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get user by ID %s: %w", id, err))
	}
	return &user, nil
}

// UpdateProfile updates name and avatar only; email and password are never
// touched through this path.
func (r *GORMUserRepository) UpdateProfile(id, name, avatar string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Requested resource not found.")
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get user by ID %s: %w", id, err))
	}
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if avatar != "" {
		updates["avatar"] = avatar
	}
	if len(updates) > 0 {
		if err := r.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.NewInternal(fmt.Errorf("failed to update user %s: %w", id, err))
		}
	}
	return &user, nil
}
