package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("notification not found")
	ErrInvalidInput = errors.New("invalid input")
)

type NotificationType string

const (
	TypeOrder   NotificationType = "order"
	TypeStock   NotificationType = "stock"
	TypeReview  NotificationType = "review"
	TypeUser    NotificationType = "user"
	TypeMessage NotificationType = "message"
	TypeSystem  NotificationType = "system"

	// TypeInfo is only used by the empty-feed placeholder.
	TypeInfo NotificationType = "info"
)

const PlaceholderID = "placeholder"

// Notification is a feed entry owned by one administrator.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId,omitempty"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	RelatedID string           `json:"relatedId,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Placeholder is returned in place of an empty feed and is never stored.
func Placeholder(now time.Time) Notification {
	return Notification{
		ID:        PlaceholderID,
		Type:      TypeInfo,
		Message:   "No notifications yet.",
		IsRead:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Candidate is a notification computed from a business event that has not
// been persisted yet.
type Candidate struct {
	Type      NotificationType
	Message   string
	RelatedID string
	At        time.Time
}

func (c Candidate) ForUser(userID string) Notification {
	return Notification{
		UserID:    userID,
		Type:      c.Type,
		Message:   c.Message,
		RelatedID: c.RelatedID,
		CreatedAt: c.At,
	}
}
