package models

// Review - at most one non-deleted review per (user, restaurant).
type Review struct {
	BaseModelWithDeleted
	RestaurantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_user_restaurant,where:deleted_at IS NULL" json:"restaurantId"`
	UserID       string `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_restaurant,where:deleted_at IS NULL" json:"userId"`
	Rating       int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string `gorm:"type:text" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
