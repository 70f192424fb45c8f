package persistent

import (
	"context"
	"errors"
	"fmt"

	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository interface {
	// InsertIfAbsent stores n unless a row with the same user, type and
	// message exists. It reports whether a row was written; existing rows
	// are left untouched.
	InsertIfAbsent(ctx context.Context, n *entity.Notification) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

var dedupColumns = []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "message"}}

func (r *notificationRepository) InsertIfAbsent(ctx context.Context, n *entity.Notification) (bool, error) {
	m := ToNotificationModel(n)
	m.IsRead = false

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: dedupColumns, DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return false, fmt.Errorf("insert notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	*n = *ToNotificationEntity(m)
	return true, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	var models []model.NotificationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return ToNotificationEntities(models), nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	// ids are uuids; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrNotFound
	}

	var m model.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&m).Update("is_read", true).Error; err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	m.IsRead = true

	return ToNotificationEntity(&m), nil
}
