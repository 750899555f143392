package models

import "gorm.io/datatypes"

// Restaurant is the aggregate root. AverageRating and NumReviews are
// denormalized from non-deleted reviews.
type Restaurant struct {
	BaseModelWithDeleted
	Name          string                      `gorm:"not null" json:"name"`
	Slug          string                      `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string                      `json:"description"`
	Address       string                      `json:"address"`
	City          string                      `gorm:"index" json:"city"`
	Phone         string                      `json:"phone"`
	Cuisines      datatypes.JSONSlice[string] `json:"cuisines"`
	PriceRange    int                         `gorm:"default:2" json:"priceRange"`
	OpeningHours  string                      `json:"openingHours"`
	ImageURL      string                      `json:"imageUrl"`
	AverageRating float64                     `gorm:"not null;default:0" json:"averageRating"`
	NumReviews    int                         `gorm:"not null;default:0" json:"numReviews"`
	OwnerID       string                      `gorm:"type:uuid;index" json:"ownerId"`
}

type MenuItem struct {
	BaseModelWithDeleted
	RestaurantID string  `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"imageUrl"`
	Available    bool    `gorm:"not null" json:"available"`
}

// BusinessUser grants a user a role over exactly one restaurant.
type BusinessUser struct {
	BaseModel
	UserID       string       `gorm:"type:uuid;not null;uniqueIndex:idx_business_user_restaurant" json:"userId"`
	RestaurantID string       `gorm:"type:uuid;not null;uniqueIndex:idx_business_user_restaurant;index" json:"restaurantId"`
	Role         BusinessRole `gorm:"type:varchar(20);not null" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Follow struct {
	BaseModel
	UserID       string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_restaurant" json:"userId"`
	RestaurantID string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_restaurant;index" json:"restaurantId"`
}
