package services

import (
	"context"
	"encoding/json"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services/dto"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// contextOf returns the request context carried by db, if any.
func contextOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

func toUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{}
	_ = copier.Copy(resp, user)
	resp.Role = string(user.Role)
	resp.Status = string(user.Status)
	return resp
}

func toRestaurantResponse(r *models.Restaurant) *dto.RestaurantResponse {
	resp := &dto.RestaurantResponse{}
	_ = copier.Copy(resp, r)
	resp.Cuisines = append([]string{}, r.Cuisines...)
	return resp
}

func toMenuItemResponse(item *models.MenuItem) dto.MenuItemResponse {
	var resp dto.MenuItemResponse
	_ = copier.Copy(&resp, item)
	return resp
}

func toReservationResponse(r *models.Reservation) *dto.ReservationResponse {
	resp := &dto.ReservationResponse{}
	_ = copier.CopyWithOption(resp, r, copier.Option{IgnoreEmpty: true})
	resp.DateReservation = r.DateReservation.Format(dto.DateLayout)
	resp.State = string(r.State)
	if r.Restaurant != nil {
		resp.RestaurantName = r.Restaurant.Name
	}
	return resp
}

func toPostResponse(p *models.Post) *dto.PostResponse {
	resp := &dto.PostResponse{}
	_ = copier.Copy(resp, p)
	resp.State = string(p.State)
	if p.Author != nil {
		resp.AuthorName = p.Author.Name
	}
	if p.Restaurant != nil {
		resp.RestaurantName = p.Restaurant.Name
	}
	return resp
}

func toReviewResponse(r *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{}
	_ = copier.Copy(resp, r)
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	return resp
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      json.RawMessage(n.Data),
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func mapSlice[M any, R any](items []M, fn func(*M) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
