package services

import (
	"encoding/json"
	"sync"

	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/ws"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pusher delivers a payload to the live connections of a user.
type Pusher interface {
	SendToUser(userID string, msg any) int
}

// NotificationEmitter records notifications without failing the caller.
type NotificationEmitter interface {
	Emit(userIDs []string, notificationType models.NotificationType, title, message string, data map[string]string)
}

// AsyncNotificationEmitter persists on its own goroutine and pushes the saved
// record over websocket. Errors are logged only.
type AsyncNotificationEmitter struct {
	db     *gorm.DB
	repo   repositories.NotificationRepository
	pusher Pusher
	wg     sync.WaitGroup
}

func NewNotificationEmitter(db *gorm.DB, repo repositories.NotificationRepository, pusher Pusher) *AsyncNotificationEmitter {
	return &AsyncNotificationEmitter{db: db, repo: repo, pusher: pusher}
}

func (e *AsyncNotificationEmitter) Emit(userIDs []string, notificationType models.NotificationType, title, message string, data map[string]string) {
	if len(userIDs) == 0 {
		return
	}

	var payload datatypes.JSON
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Error("Failed to marshal notification data", "type", notificationType, "error", err)
			return
		}
		payload = datatypes.JSON(raw)
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup || userID == "" {
			continue
		}
		seen[userID] = struct{}{}
		notifications = append(notifications, &models.Notification{
			UserID:  userID,
			Type:    notificationType,
			Title:   title,
			Message: message,
			Data:    payload,
		})
	}
	if len(notifications) == 0 {
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.deliver(notifications)
	}()
}

func (e *AsyncNotificationEmitter) deliver(notifications []*models.Notification) {
	if err := e.repo.CreateBulk(e.db, notifications); err != nil {
		logger.Error("Failed to save notifications", "count", len(notifications), "error", err)
		return
	}

	if e.pusher == nil {
		return
	}
	for _, n := range notifications {
		e.pusher.SendToUser(n.UserID, ws.Message{
			Event: "notification",
			Data:  toNotificationResponse(n),
		})
	}
}

// Wait blocks until every pending emission has finished.
func (e *AsyncNotificationEmitter) Wait() {
	e.wg.Wait()
}

type noopEmitter struct{}

func (noopEmitter) Emit([]string, models.NotificationType, string, string, map[string]string) {}

func emitterOrNoop(n NotificationEmitter) NotificationEmitter {
	if n == nil {
		return noopEmitter{}
	}
	return n
}
