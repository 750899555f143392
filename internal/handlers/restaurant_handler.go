package handlers

import (
	"net/http"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	*BaseHandler
	restaurantService services.RestaurantService
	accessService     services.AccessService
}

func NewRestaurantHandler(base *BaseHandler, restaurantService services.RestaurantService, accessService services.AccessService) *RestaurantHandler {
	return &RestaurantHandler{
		BaseHandler:       base,
		restaurantService: restaurantService,
		accessService:     accessService,
	}
}

func (h *RestaurantHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	staff := guards.Staff(services.ResourceRestaurant, "id")
	owner := guards.Staff(services.ResourceRestaurant, "id", models.BusinessRoleOwner)

	restaurants := rg.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.POST("", guards.Auth, h.CreateRestaurant)
		restaurants.GET("/slug/:slug", h.GetRestaurantBySlug)

		restaurants.GET("/:id", h.GetRestaurant)
		restaurants.PUT("/:id", guards.Auth, staff, h.UpdateRestaurant)
		restaurants.DELETE("/:id", guards.Auth, owner, h.DeleteRestaurant)

		// Menu
		restaurants.GET("/:id/menu", guards.OptionalAuth, h.GetMenu)
		restaurants.POST("/:id/menu", guards.Auth, staff, h.CreateMenuItem)
		restaurants.PUT("/:id/menu/:itemId", guards.Auth, staff, h.UpdateMenuItem)
		restaurants.DELETE("/:id/menu/:itemId", guards.Auth, staff, h.DeleteMenuItem)

		// Staff
		restaurants.GET("/:id/staff", guards.Auth, staff, h.ListStaff)
		restaurants.POST("/:id/operators", guards.Auth, owner, h.AddOperator)
		restaurants.DELETE("/:id/operators/:userId", guards.Auth, owner, h.RemoveOperator)

		// Follows
		restaurants.POST("/:id/follow", guards.Auth, h.Follow)
		restaurants.DELETE("/:id/follow", guards.Auth, h.Unfollow)
	}
}

// ---------------- Restaurants ----------------

// ListRestaurants godoc
// @Summary Search restaurants
// @Tags restaurants
// @Produce json
// @Param city query string false "City"
// @Param cuisine query string false "Cuisine"
// @Param q query string false "Name contains"
// @Param min_rating query number false "Minimum average rating"
// @Param sort query string false "rating or newest"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.ListResponse[dto.RestaurantResponse]
// @Router /api/restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var query dto.RestaurantListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	restaurants, err := h.restaurantService.ListRestaurants(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRestaurantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.GetRestaurant(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) GetRestaurantBySlug(c *gin.Context) {
	restaurant, err := h.restaurantService.GetRestaurantBySlug(h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	var req dto.UpdateRestaurantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	if err := h.restaurantService.DeleteRestaurant(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Menu ----------------

// GetMenu - доступные позиции меню. Персонал может передать all=true, чтобы видеть скрытые.
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	db := h.GetDB(c)
	restaurantID := c.Param("id")

	includeUnavailable := false
	if userID := h.OptionalUserID(c); userID != "" && ParseQueryBool(c, "all") {
		isStaff, err := h.accessService.IsStaff(db, userID, restaurantID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		includeUnavailable = isStaff
	}

	items, err := h.restaurantService.GetMenu(db, restaurantID, includeUnavailable)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *RestaurantHandler) CreateMenuItem(c *gin.Context) {
	var req dto.MenuItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.restaurantService.CreateMenuItem(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.restaurantService.UpdateMenuItem(h.GetDB(c), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.restaurantService.DeleteMenuItem(h.GetDB(c), c.Param("id"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Staff ----------------

func (h *RestaurantHandler) ListStaff(c *gin.Context) {
	staff, err := h.restaurantService.ListStaff(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": staff})
}

// AddOperator godoc
// @Summary Grant the operator role to an existing user
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body dto.AddOperatorRequest true "Operator email"
// @Success 201 {object} dto.StaffResponse
// @Failure 403 {object} apperrors.AppError "Caller is not the owner"
// @Failure 404 {object} apperrors.AppError "No user with this email"
// @Failure 409 {object} apperrors.AppError "User already has a role"
// @Router /api/restaurants/{id}/operators [post]
func (h *RestaurantHandler) AddOperator(c *gin.Context) {
	var req dto.AddOperatorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	staff, err := h.restaurantService.AddOperator(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *RestaurantHandler) RemoveOperator(c *gin.Context) {
	if err := h.restaurantService.RemoveOperator(h.GetDB(c), c.Param("id"), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Follows ----------------

func (h *RestaurantHandler) Follow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	state, err := h.restaurantService.Follow(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *RestaurantHandler) Unfollow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	state, err := h.restaurantService.Unfollow(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
