package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	staff := guards.Staff(services.ResourcePost, "id")

	posts := rg.Group("/posts")
	{
		posts.GET("", guards.OptionalAuth, h.GetFeed)
		posts.POST("", guards.Auth, h.CreatePost)
		posts.GET("/:id", guards.OptionalAuth, h.GetPost)
		posts.PATCH("/:id/accept", guards.Auth, staff, h.AcceptPost)
		posts.PATCH("/:id/reject", guards.Auth, staff, h.RejectPost)
		posts.DELETE("/:id", guards.Auth, h.DeletePost)
	}

	rg.GET("/restaurants/:id/posts", h.GetRestaurantPosts)
	rg.GET("/restaurants/:id/posts/pending",
		guards.Auth, guards.Staff(services.ResourceRestaurant, "id"), h.GetPendingPosts)
}

// GetFeed - принятые посты, новые сверху. following=true оставляет только
// рестораны, на которые подписан пользователь (нужен токен).
func (h *PostHandler) GetFeed(c *gin.Context) {
	var query dto.PostFeedQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	feed, err := h.postService.GetFeed(h.GetDB(c), h.OptionalUserID(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// CreatePost godoc
// @Summary Publish a post about a restaurant
// @Description Posts by restaurant staff are accepted at once, others wait for moderation.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.PostResponse
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(h.GetDB(c), h.OptionalUserID(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetRestaurantPosts(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	posts, err := h.postService.GetRestaurantPosts(h.GetDB(c), c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPendingPosts(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	posts, err := h.postService.GetPendingPosts(h.GetDB(c), c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) AcceptPost(c *gin.Context) {
	post, err := h.postService.AcceptPost(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) RejectPost(c *gin.Context) {
	post, err := h.postService.RejectPost(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
