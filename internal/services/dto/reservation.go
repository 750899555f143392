package dto

import "time"

// DateLayout is the wire format of reservation dates.
const DateLayout = "2006-01-02"

type CreateReservationRequest struct {
	RestaurantID   string `json:"restaurantId" validate:"required,uuid"`
	Date           string `json:"dateReservation" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,hhmm"`
	NumberOfGuests int    `json:"numberOfGuests" validate:"required,min=1,max=50"`
	CustomerName   string `json:"customerName" validate:"required,min=1,max=100"`
	PhoneNumber    string `json:"phoneNumber" validate:"required,min=3,max=30"`
	Note           string `json:"note" validate:"omitempty,max=500"`
}

type ReservationListQuery struct {
	PageQuery
	State string `form:"state" validate:"omitempty,oneof=pending confirmed rejected cancelled completed"`
	From  string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

type ReservationResponse struct {
	ID              string    `json:"id"`
	RestaurantID    string    `json:"restaurantId"`
	RestaurantName  string    `json:"restaurantName,omitempty"`
	UserID          string    `json:"userId"`
	DateReservation string    `json:"dateReservation"`
	Time            string    `json:"time"`
	NumberOfGuests  int       `json:"numberOfGuests"`
	CustomerName    string    `json:"customerName"`
	PhoneNumber     string    `json:"phoneNumber"`
	Note            string    `json:"note,omitempty"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SweepResult reports what one pass of the reservation sweeper changed.
type SweepResult struct {
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
}
