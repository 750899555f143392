package services

import (
	"time"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services/dto"

	"gorm.io/gorm"
)

type NotificationService interface {
	GetUserNotifications(db *gorm.DB, userID string, query *dto.NotificationListQuery) (*dto.ListResponse[dto.NotificationResponse], error)
	GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (*dto.MarkAllReadResponse, error)
	// CleanOldNotifications removes read notifications older than the given age.
	CleanOldNotifications(db *gorm.DB, olderThan time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string, query *dto.NotificationListQuery) (*dto.ListResponse[dto.NotificationResponse], error) {
	query.Normalize()

	notifications, total, err := s.notificationRepo.ListByUser(db, userID, repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Type:       models.NotificationType(query.Type),
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := mapSlice(notifications, toNotificationResponse)
	return dto.NewListResponse(items, total, query.Page, query.PageSize), nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	return translateError(s.notificationRepo.MarkAsRead(db, notificationID, userID))
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (s *notificationService) CleanOldNotifications(db *gorm.DB, olderThan time.Duration) (int64, error) {
	return s.notificationRepo.DeleteReadOlderThan(db, time.Now().Add(-olderThan))
}
