package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"restaurant_backend/internal/config"
	"restaurant_backend/internal/imageprocessor"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"
	"restaurant_backend/internal/storage"
	"restaurant_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadSettings bounds what the upload endpoint accepts.
type UploadSettings struct {
	MaxSize       int64
	AllowedTypes  []string
	ImageMaxWidth int
}

type UploadService interface {
	// UploadFile stores a file under <category>/ and returns its public URL.
	UploadFile(ctx context.Context, db *gorm.DB, userID, category string, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	uploadRepo repositories.UploadRepository
	storage    storage.Storage
	processor  *imageprocessor.Processor
	settings   UploadSettings
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	settings UploadSettings,
) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		storage:    store,
		processor:  processor,
		settings:   settings,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, db *gorm.DB, userID, category string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	rules, ok := config.UploadCategories[category]
	if !ok {
		return nil, apperrors.ValidationError([]apperrors.FieldError{{Field: "category", Message: "Unknown upload category"}})
	}
	if s.settings.MaxSize > 0 && file.Size > s.settings.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	data, err := readAll(file, s.settings.MaxSize)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(data)
	if !s.allowed(contentType) {
		return nil, apperrors.ErrUnsupportedFile
	}

	upload := &models.Upload{
		UserID:          userID,
		Category:        category,
		OriginalName:    filepath.Base(file.Filename),
		MimeType:        contentType,
		StorageProvider: s.storage.Provider(),
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if strings.HasPrefix(contentType, "image/") {
		result, err := s.processor.Fit(data, s.maxWidth(rules))
		if err != nil {
			return nil, apperrors.ErrUnsupportedFile.WithError(err)
		}
		data = result.Data
		ext = result.Ext()
		upload.MimeType = result.ContentType
		upload.Width = result.Width
		upload.Height = result.Height
	} else if rules.ImagesOnly {
		return nil, apperrors.ErrUnsupportedFile
	}

	key, err := storage.Key(category, uuid.NewString()+ext)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.Save(ctx, key, bytes.NewReader(data), upload.MimeType)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "upload", "Failed to store file", http.StatusInternalServerError)
	}

	upload.Path = key
	upload.URL = url
	upload.Size = int64(len(data))

	if err := s.uploadRepo.Create(db, upload); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWarn(ctx, "Failed to remove orphaned file", "key", key, "error", delErr)
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "File uploaded", "upload_id", upload.ID, "category", category, "size", upload.Size)

	return &dto.UploadResponse{
		ID:        upload.ID,
		URL:       upload.URL,
		Category:  upload.Category,
		MimeType:  upload.MimeType,
		Size:      upload.Size,
		Width:     upload.Width,
		Height:    upload.Height,
		CreatedAt: upload.CreatedAt,
	}, nil
}

func (s *uploadService) allowed(contentType string) bool {
	for _, t := range s.settings.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

func (s *uploadService) maxWidth(rules config.UploadCategory) int {
	width := rules.MaxWidth
	if s.settings.ImageMaxWidth > 0 && (width == 0 || s.settings.ImageMaxWidth < width) {
		width = s.settings.ImageMaxWidth
	}
	return width
}

func readAll(file *multipart.FileHeader, limit int64) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, apperrors.NewBadRequestError("Cannot read uploaded file")
	}
	defer src.Close()

	var reader io.Reader = src
	if limit > 0 {
		reader = io.LimitReader(src, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("read upload: %w", err))
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, apperrors.ErrFileTooLarge
	}
	return data, nil
}
