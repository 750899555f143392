package services

import (
	"restaurant_backend/internal/email"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AccessService       AccessService
	AuthService         AuthService
	ProfileService      ProfileService
	RestaurantService   RestaurantService
	ReservationService  ReservationService
	PostService         PostService
	ReviewService       ReviewService
	NotificationService NotificationService
	UploadService       UploadService
	EmailService        email.Provider
	Notifier            *AsyncNotificationEmitter
}
