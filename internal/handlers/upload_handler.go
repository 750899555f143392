package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, guards *Guards) {
	rg.POST("/uploads", guards.Auth, h.Upload)
}

// Upload godoc
// @Summary Upload an image
// @Description Stores the file under <category>/ and returns the URL to reference it by.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param category query string true "restaurants, menu, posts or avatars"
// @Param file formData file true "File"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.AppError "Too large or unsupported"
// @Router /api/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.UploadQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError([]apperrors.FieldError{
			{Field: "file", Message: "This field is required"},
		}))
		return
	}

	upload, err := h.uploadService.UploadFile(c.Request.Context(), h.GetDB(c), userID, query.Category, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}
