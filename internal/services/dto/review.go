package dto

import "time"

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RatingResponse is the restaurant aggregate after a review write.
type RatingResponse struct {
	RestaurantID  string  `json:"restaurantId"`
	AverageRating float64 `json:"averageRating"`
	NumReviews    int     `json:"numReviews"`
}

type ReviewMutationResponse struct {
	Review *ReviewResponse `json:"review,omitempty"`
	Rating RatingResponse  `json:"rating"`
}
