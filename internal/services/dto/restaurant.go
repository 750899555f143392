package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateRestaurantRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=150"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	Address      string   `json:"address" validate:"required,max=255"`
	City         string   `json:"city" validate:"required,max=100"`
	Phone        string   `json:"phone" validate:"omitempty,max=30"`
	Cuisines     []string `json:"cuisines" validate:"omitempty,max=10,dive,min=1,max=50"`
	PriceRange   int      `json:"priceRange" validate:"omitempty,min=1,max=4"`
	OpeningHours string   `json:"openingHours" validate:"omitempty,max=500"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,max=500"`
}

type UpdateRestaurantRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,max=255"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	Cuisines     []string `json:"cuisines,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	PriceRange   *int     `json:"priceRange,omitempty" validate:"omitempty,min=1,max=4"`
	OpeningHours *string  `json:"openingHours,omitempty" validate:"omitempty,max=500"`
	ImageURL     *string  `json:"imageUrl,omitempty" validate:"omitempty,max=500"`
}

type RestaurantListQuery struct {
	PageQuery
	City      string  `form:"city" validate:"omitempty,max=100"`
	Cuisine   string  `form:"cuisine" validate:"omitempty,max=50"`
	Q         string  `form:"q" validate:"omitempty,max=100"`
	MinRating float64 `form:"min_rating" validate:"omitempty,gte=0,lte=5"`
	Sort      string  `form:"sort" validate:"omitempty,oneof=rating newest"`
}

type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"omitempty,max=50"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,max=500"`
	Available   *bool   `json:"available,omitempty"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,max=500"`
	Available   *bool    `json:"available,omitempty"`
}

type AddOperatorRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ======================
// Response DTOs
// ======================

type RestaurantResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Phone         string    `json:"phone"`
	Cuisines      []string  `json:"cuisines"`
	PriceRange    int       `json:"priceRange"`
	OpeningHours  string    `json:"openingHours"`
	ImageURL      string    `json:"imageUrl"`
	AverageRating float64   `json:"averageRating"`
	NumReviews    int       `json:"numReviews"`
	OwnerID       string    `json:"ownerId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StaffRestaurantResponse is a restaurant seen by one of its staff members.
type StaffRestaurantResponse struct {
	RestaurantResponse
	Role string `json:"role"`
}

type MenuItemResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"imageUrl"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StaffResponse struct {
	UserID string    `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Since  time.Time `json:"since"`
}

type FollowResponse struct {
	RestaurantID string `json:"restaurantId"`
	Following    bool   `json:"following"`
	Followers    int64  `json:"followers"`
}
