package models

import "time"

type Reservation struct {
	BaseModel
	RestaurantID    string           `gorm:"type:uuid;not null;index" json:"restaurantId"`
	UserID          string           `gorm:"type:uuid;not null;index" json:"userId"`
	DateReservation time.Time        `gorm:"type:date;not null;index" json:"dateReservation"`
	Time            string           `gorm:"type:varchar(5);not null" json:"time"`
	NumberOfGuests  int              `gorm:"not null" json:"numberOfGuests"`
	CustomerName    string           `gorm:"not null" json:"customerName"`
	PhoneNumber     string           `gorm:"not null" json:"phoneNumber"`
	Note            string           `json:"note,omitempty"`
	State           ReservationState `gorm:"type:varchar(20);not null;index" json:"state"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}
