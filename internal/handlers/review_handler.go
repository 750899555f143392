package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	reviews := rg.Group("/restaurants/:id/reviews")
	{
		reviews.GET("", h.GetRestaurantReviews)
		reviews.POST("", guards.Auth, h.CreateReview)
		reviews.DELETE("/:reviewId", guards.Auth, h.DeleteReview)
	}
}

func (h *ReviewHandler) GetRestaurantReviews(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reviews, err := h.reviewService.GetRestaurantReviews(h.GetDB(c), c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview godoc
// @Summary Review a restaurant
// @Description One active review per user and restaurant. The response carries the recomputed rating.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewMutationResponse
// @Failure 409 {object} apperrors.AppError "Already reviewed"
// @Router /api/restaurants/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.reviewService.CreateReview(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.reviewService.DeleteReview(h.GetDB(c), userID, h.IsAdmin(c), c.Param("id"), c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
