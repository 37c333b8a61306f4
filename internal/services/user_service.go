package services

import (
	"wtwr/internal/models"
	"wtwr/internal/repositories"
)

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetCurrentUser returns the user record for the authenticated caller.
// A user deleted since token issuance surfaces as NotFound.
func (s *UserService) GetCurrentUser(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile changes name and avatar only; empty fields are left as-is.
func (s *UserService) UpdateProfile(userID, name, avatar string) (*models.User, error) {
	return s.userRepo.UpdateProfile(userID, name, avatar)
}
