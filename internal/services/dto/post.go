package dto

import "time"

type CreatePostRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required,uuid"`
	Image        string `json:"image" validate:"omitempty,max=500"`
	Content      string `json:"content" validate:"required,min=1,max=5000"`
}

type PostFeedQuery struct {
	PageQuery
	Following bool `form:"following"`
}

type PostResponse struct {
	ID                 string    `json:"id"`
	AuthorUserID       string    `json:"authorUserId"`
	AuthorName         string    `json:"authorName,omitempty"`
	AuthorRestaurantID string    `json:"authorRestaurantId"`
	RestaurantName     string    `json:"restaurantName,omitempty"`
	Image              string    `json:"image,omitempty"`
	Content            string    `json:"content"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"createdAt"`
}
