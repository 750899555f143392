package handlers

import (
	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	RestaurantHandler   *RestaurantHandler
	ReservationHandler  *ReservationHandler
	PostHandler         *PostHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	UploadHandler       *UploadHandler
}

// Guards - middleware, которые хэндлеры вешают на свои маршруты.
type Guards struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	Access       services.AccessService
}

// Staff проверяет роль пользователя в ресторане, найденном по параметру param.
func (g *Guards) Staff(kind services.ResourceKind, param string, roles ...models.BusinessRole) gin.HandlerFunc {
	return middleware.RequireStaff(g.Access, kind, param, roles...)
}

func NewAppHandlers(base *BaseHandler, svc *services.ServiceContainer, guards *Guards) *AppHandlers {
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		ProfileHandler:      NewProfileHandler(base, svc.ProfileService, svc.ReservationService, svc.ReviewService, svc.RestaurantService),
		RestaurantHandler:   NewRestaurantHandler(base, svc.RestaurantService, svc.AccessService),
		ReservationHandler:  NewReservationHandler(base, svc.ReservationService),
		PostHandler:         NewPostHandler(base, svc.PostService),
		ReviewHandler:       NewReviewHandler(base, svc.ReviewService),
		NotificationHandler: NewNotificationHandler(base, svc.NotificationService),
		UploadHandler:       NewUploadHandler(base, svc.UploadService),
	}
}

// RegisterRoutes монтирует все хэндлеры на rg.
func (h *AppHandlers) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	h.AuthHandler.RegisterRoutes(rg, guards)
	h.ProfileHandler.RegisterRoutes(rg, guards)
	h.RestaurantHandler.RegisterRoutes(rg, guards)
	h.ReservationHandler.RegisterRoutes(rg, guards)
	h.PostHandler.RegisterRoutes(rg, guards)
	h.ReviewHandler.RegisterRoutes(rg, guards)
	h.NotificationHandler.RegisterRoutes(rg, guards)
	h.UploadHandler.RegisterRoutes(rg, guards)
}
