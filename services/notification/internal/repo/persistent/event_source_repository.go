package persistent

import (
	"context"
	"fmt"

	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/model"

	"gorm.io/gorm"
)

// EventSourceRepository reads the business records the admin feed watches.
type EventSourceRepository interface {
	RecentOrders(ctx context.Context, limit int) ([]entity.OrderEvent, error)
	LowStockProducts(ctx context.Context, threshold int) ([]entity.StockEvent, error)
	PendingReviews(ctx context.Context) ([]entity.ReviewEvent, error)
	RecentSignups(ctx context.Context, limit int) ([]entity.SignupEvent, error)
	OpenContacts(ctx context.Context) ([]entity.ContactEvent, error)
}

type eventSourceRepository struct {
	db *gorm.DB
}

func NewEventSourceRepository(db *gorm.DB) EventSourceRepository {
	return &eventSourceRepository{db: db}
}

func (r *eventSourceRepository) RecentOrders(ctx context.Context, limit int) ([]entity.OrderEvent, error) {
	var orders []model.OrderModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("read recent orders: %w", err)
	}
	return ToOrderEvents(orders), nil
}

func (r *eventSourceRepository) LowStockProducts(ctx context.Context, threshold int) ([]entity.StockEvent, error) {
	var products []model.ProductModel
	if err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("updated_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("read low stock products: %w", err)
	}
	return ToStockEvents(products), nil
}

func (r *eventSourceRepository) PendingReviews(ctx context.Context) ([]entity.ReviewEvent, error) {
	var rows []model.ReviewRow
	if err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, products.name AS product_name, reviews.created_at").
		Joins("LEFT JOIN products ON products.id = reviews.product_id").
		Where("reviews.approved = ?", false).
		Order("reviews.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("read pending reviews: %w", err)
	}
	return ToReviewEvents(rows), nil
}

func (r *eventSourceRepository) RecentSignups(ctx context.Context, limit int) ([]entity.SignupEvent, error) {
	var users []model.UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("read recent users: %w", err)
	}
	return ToSignupEvents(users), nil
}

func (r *eventSourceRepository) OpenContacts(ctx context.Context) ([]entity.ContactEvent, error) {
	var contacts []model.ContactModel
	if err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"read": false, "archived": false}).
		Order("created_at DESC").
		Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("read open contacts: %w", err)
	}
	return ToContactEvents(contacts), nil
}
