package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cusceda/services/property/internal/entity"
	"cusceda/services/property/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	ListVisible(ctx context.Context) ([]entity.Property, error)
	ListAdmin(ctx context.Context, q entity.AdminQuery) ([]entity.Property, int64, error)
	Related(ctx context.Context, property *entity.Property, limit int) ([]entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	SetVisible(ctx context.Context, id string, visible bool) (*entity.Property, error)
	Delete(ctx context.Context, id string) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyModel := ToPropertyModel(property)
	if err := r.db.WithContext(ctx).Create(propertyModel).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	*property = *ToPropertyEntity(propertyModel)
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrNotFound
	}

	var propertyModel model.PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&propertyModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return ToPropertyEntity(&propertyModel), nil
}

func (r *propertyRepository) ListVisible(ctx context.Context) ([]entity.Property, error) {
	var propertyModels []model.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at DESC").
		Find(&propertyModels).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return ToPropertyEntities(propertyModels), nil
}

func (r *propertyRepository) ListAdmin(ctx context.Context, q entity.AdminQuery) ([]entity.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PropertyModel{})

	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(category) LIKE ?",
			like, like, like, like,
		)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	switch q.Sort {
	case "price-asc":
		query = query.Order("price ASC")
	case "price-desc":
		query = query.Order("price DESC")
	case "newest":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at ASC")
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var propertyModels []model.PropertyModel
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&propertyModels).Error; err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return ToPropertyEntities(propertyModels), total, nil
}

func (r *propertyRepository) Related(ctx context.Context, property *entity.Property, limit int) ([]entity.Property, error) {
	var propertyModels []model.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("visible = ? AND id <> ?", true, property.ID).
		Where(r.db.Where("category = ?", property.Category).Or("city = ?", property.City)).
		Order("created_at DESC").
		Limit(limit).
		Find(&propertyModels).Error; err != nil {
		return nil, fmt.Errorf("list related properties: %w", err)
	}
	return ToPropertyEntities(propertyModels), nil
}

func (r *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	propertyModel := ToPropertyModel(property)
	result := r.db.WithContext(ctx).Model(propertyModel).Select("*").Omit("id", "created_at").Updates(propertyModel)
	if result.Error != nil {
		return fmt.Errorf("update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	*property = *ToPropertyEntity(propertyModel)
	return nil
}

func (r *propertyRepository) SetVisible(ctx context.Context, id string, visible bool) (*entity.Property, error) {
	property, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	propertyModel := ToPropertyModel(property)
	if err := r.db.WithContext(ctx).Model(propertyModel).Update("visible", visible).Error; err != nil {
		return nil, fmt.Errorf("set property visibility: %w", err)
	}
	propertyModel.Visible = visible
	return ToPropertyEntity(propertyModel), nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrNotFound
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PropertyModel{})
	if result.Error != nil {
		return fmt.Errorf("delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
