package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	*BaseHandler
	reservationService services.ReservationService
}

func NewReservationHandler(base *BaseHandler, reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		BaseHandler:        base,
		reservationService: reservationService,
	}
}

func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	staff := guards.Staff(services.ResourceReservation, "id")

	reservations := rg.Group("/reservations")
	reservations.Use(guards.Auth)
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.PATCH("/:id/confirm", staff, h.ConfirmReservation)
		reservations.PATCH("/:id/reject", staff, h.RejectReservation)
		reservations.PATCH("/:id/complete", staff, h.CompleteReservation)
		reservations.PATCH("/:id/cancel", h.CancelReservation)
	}

	rg.GET("/restaurants/:id/reservations",
		guards.Auth, guards.Staff(services.ResourceRestaurant, "id"), h.GetRestaurantReservations)
}

// CreateReservation godoc
// @Summary Book a table
// @Description Staff bookings are confirmed immediately, all others start pending.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Unknown restaurant"
// @Router /api/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reservation, err := h.reservationService.CreateReservation(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) GetRestaurantReservations(c *gin.Context) {
	var query dto.ReservationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reservations, err := h.reservationService.GetRestaurantReservations(h.GetDB(c), c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// --- Transitions ---

// ConfirmReservation godoc
// @Summary Confirm a pending reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 403 {object} apperrors.AppError "Not staff of the restaurant"
// @Failure 404 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "Reservation is not pending"
// @Router /api/reservations/{id}/confirm [patch]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.transition(c, h.reservationService.ConfirmReservation)
}

func (h *ReservationHandler) RejectReservation(c *gin.Context) {
	h.transition(c, h.reservationService.RejectReservation)
}

func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, h.reservationService.CompleteReservation)
}

func (h *ReservationHandler) transition(c *gin.Context, apply func(db *gorm.DB, reservationID string) (*dto.ReservationResponse, error)) {
	reservation, err := apply(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reservation, err := h.reservationService.CancelReservation(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}
