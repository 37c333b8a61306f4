package models

import "time"

// Weather categories a clothing item can be tagged with.
const (
	WeatherHot  = "hot"
	WeatherWarm = "warm"
	WeatherCold = "cold"
)

// ClothingItem represents one entry in the shared wardrobe catalog. The owner
// is fixed at creation; likes form a set of users (no duplicates).
type ClothingItem struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Weather  string `json:"weather" validate:"required,oneof=hot warm cold"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	OwnerID  string `json:"-" gorm:"type:varchar(36);index"`
	Owner    User   `json:"owner" gorm:"foreignKey:OwnerID"`
	Likes    []User `json:"likes" gorm:"many2many:item_likes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
