package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationOrder   NotificationType = "order"
	NotificationStock   NotificationType = "stock"
	NotificationReview  NotificationType = "review"
	NotificationUser    NotificationType = "user"
	NotificationMessage NotificationType = "message"
	NotificationSystem  NotificationType = "system"
)

// Notification rows are unique per (user_id, type, message).
type Notification struct {
	ID        string           `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string           `gorm:"not null;uniqueIndex:idx_notification_dedup,priority:1;index:idx_notification_user_created,priority:1" json:"userId"`
	Type      NotificationType `gorm:"type:varchar(20);not null;uniqueIndex:idx_notification_dedup,priority:2" json:"type"`
	Message   string           `gorm:"not null;uniqueIndex:idx_notification_dedup,priority:3" json:"message"`
	RelatedID string           `gorm:"type:varchar(64)" json:"relatedId"`
	IsRead    bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time        `gorm:"index:idx_notification_user_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
