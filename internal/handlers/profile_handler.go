package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService     services.ProfileService
	reservationService services.ReservationService
	reviewService      services.ReviewService
	restaurantService  services.RestaurantService
}

func NewProfileHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	reservationService services.ReservationService,
	reviewService services.ReviewService,
	restaurantService services.RestaurantService,
) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:        base,
		profileService:     profileService,
		reservationService: reservationService,
		reviewService:      reviewService,
		restaurantService:  restaurantService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	profile := rg.Group("/profile")
	profile.Use(guards.Auth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.PUT("/password", h.ChangePassword)
		profile.GET("/reservations", h.GetMyReservations)
		profile.GET("/reviews", h.GetMyReviews)
		profile.GET("/follows", h.GetFollowed)
		profile.GET("/restaurants", h.GetStaffRestaurants)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.profileService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) GetMyReservations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ReservationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reservations, err := h.reservationService.GetMyReservations(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *ProfileHandler) GetMyReviews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reviews, err := h.reviewService.GetUserReviews(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ProfileHandler) GetFollowed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.ListFollowed(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": restaurants})
}

func (h *ProfileHandler) GetStaffRestaurants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurantService.ListStaffRestaurants(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": restaurants})
}
