package models

type Post struct {
	BaseModelWithDeleted
	AuthorUserID       string    `gorm:"type:uuid;not null;index" json:"authorUserId"`
	AuthorRestaurantID string    `gorm:"type:uuid;not null;index" json:"authorRestaurantId"`
	Image              string    `json:"image"`
	Content            string    `gorm:"type:text" json:"content"`
	State              PostState `gorm:"type:varchar(20);not null;index" json:"state"`

	Author     *User       `gorm:"foreignKey:AuthorUserID" json:"author,omitempty"`
	Restaurant *Restaurant `gorm:"foreignKey:AuthorRestaurantID" json:"restaurant,omitempty"`
}
