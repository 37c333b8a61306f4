package models

import "gorm.io/gorm"

// User represents a registered user of the wardrobe catalog.
type User struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name   string `json:"name" validate:"required,min=2,max=30"`
	Avatar string `json:"avatar" validate:"required,url"`
	Email  string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	// Hashed with bcrypt before it ever reaches the store; json:"-" keeps it
	// out of every response payload.
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	gorm.Model `json:"-"` // CreatedAt, UpdatedAt, DeletedAt
}
