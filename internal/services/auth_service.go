package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wtwr/internal/apperrors"
	"wtwr/internal/config"
	"wtwr/internal/models"
	"wtwr/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// One message for both unknown email and wrong password, so login failures
// never reveal which credential was wrong.
const incorrectCredentialsMessage = "Incorrect email or password"

// AuthService handles password hashing, token issuance and verification.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService using the secret from cfg.
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenDurat: 7 * 24 * time.Hour, // tokens valid for 7 days
	}
}

// RegisterUser hashes the password, normalizes the email, and saves the new
// user. A duplicate email surfaces from the repository as Conflict.
func (s *AuthService) RegisterUser(user *models.User) error {
	user.Email = strings.ToLower(user.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.NewBadRequest("The Password field must be at most 72 characters")
		}
		return apperrors.NewInternal(fmt.Errorf("failed to hash password: %w", err))
	}
	user.Password = string(hashedPassword)

	return s.userRepo.Create(user)
}

// LoginUser authenticates a user and returns a signed JWT if successful.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return "", apperrors.NewUnauthorized(incorrectCredentialsMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorized(incorrectCredentialsMessage)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(s.tokenDurat).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.NewInternal(fmt.Errorf("failed to sign token: %w", err))
	}

	return tokenString, nil
}

// ValidateToken verifies a JWT and returns the user ID it was issued for.
// Invalid signature, expiry, and malformed tokens all fail Unauthorized.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", apperrors.NewUnauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.NewUnauthorized("Invalid or expired token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperrors.NewUnauthorized("Invalid or expired token")
	}

	return sub, nil
}
