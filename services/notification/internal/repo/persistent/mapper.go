package persistent

import (
	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entity.NotificationType(m.Type),
		Message:   m.Message,
		RelatedID: m.RelatedID,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToNotificationModel(e *entity.Notification) *model.NotificationModel {
	if e == nil {
		return nil
	}
	return &model.NotificationModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      string(e.Type),
		Message:   e.Message,
		RelatedID: e.RelatedID,
		IsRead:    e.IsRead,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToNotificationEntities(models []model.NotificationModel) []entity.Notification {
	notifications := make([]entity.Notification, len(models))
	for i := range models {
		notifications[i] = *ToNotificationEntity(&models[i])
	}
	return notifications
}

func ToOrderEvents(models []model.OrderModel) []entity.OrderEvent {
	events := make([]entity.OrderEvent, len(models))
	for i, m := range models {
		events[i] = entity.OrderEvent{
			ID:        m.ID,
			OrderID:   m.OrderID,
			Status:    m.OrderStatus,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		}
	}
	return events
}

func ToStockEvents(models []model.ProductModel) []entity.StockEvent {
	events := make([]entity.StockEvent, len(models))
	for i, m := range models {
		events[i] = entity.StockEvent{
			ID:        m.ID,
			Name:      m.Name,
			Stock:     m.Stock,
			UpdatedAt: m.UpdatedAt,
		}
	}
	return events
}

func ToReviewEvents(rows []model.ReviewRow) []entity.ReviewEvent {
	events := make([]entity.ReviewEvent, len(rows))
	for i, r := range rows {
		events[i] = entity.ReviewEvent{ID: r.ID, CreatedAt: r.CreatedAt}
		if r.ProductName != nil {
			events[i].ProductName = *r.ProductName
		}
	}
	return events
}

func ToSignupEvents(models []model.UserModel) []entity.SignupEvent {
	events := make([]entity.SignupEvent, len(models))
	for i, m := range models {
		events[i] = entity.SignupEvent{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
	}
	return events
}

func ToContactEvents(models []model.ContactModel) []entity.ContactEvent {
	events := make([]entity.ContactEvent, len(models))
	for i, m := range models {
		events[i] = entity.ContactEvent{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
	}
	return events
}
