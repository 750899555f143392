package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationReservationRequested NotificationType = "reservation_requested"
	NotificationReservationConfirmed NotificationType = "reservation_confirmed"
	NotificationReservationRejected  NotificationType = "reservation_rejected"
	NotificationReservationCancelled NotificationType = "reservation_cancelled"
	NotificationReservationCompleted NotificationType = "reservation_completed"
	NotificationPostSubmitted        NotificationType = "post_submitted"
	NotificationPostAccepted         NotificationType = "post_accepted"
	NotificationPostRejected         NotificationType = "post_rejected"
	NotificationNewReview            NotificationType = "new_review"
	NotificationOperatorAdded        NotificationType = "operator_added"
)

// Notification is append-only; only the read flags change after creation.
type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:uuid;not null;index" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	Data    datatypes.JSON   `json:"data,omitempty"` // {"reservation_id": "...", "restaurant_id": "..."}
	IsRead  bool             `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt  *time.Time       `json:"readAt,omitempty"`
}
