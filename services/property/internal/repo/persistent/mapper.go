package persistent

import (
	"cusceda/services/property/internal/entity"
	"cusceda/services/property/internal/model"
)

func ToPropertyEntity(m *model.PropertyModel) *entity.Property {
	if m == nil {
		return nil
	}
	return &entity.Property{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Type:        entity.ListingType(m.Type),
		Category:    m.Category,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		Toilets:     m.Toilets,
		Area:        m.Area,
		Country:     m.Country,
		State:       m.State,
		City:        m.City,
		Address:     m.Address,
		Features:    nonNil(m.Features),
		Images:      nonNil(m.Images),
		Videos:      nonNil(m.Videos),
		Visible:     m.Visible,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPropertyModel(e *entity.Property) *model.PropertyModel {
	if e == nil {
		return nil
	}
	return &model.PropertyModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		Type:        string(e.Type),
		Category:    e.Category,
		Bedrooms:    e.Bedrooms,
		Bathrooms:   e.Bathrooms,
		Toilets:     e.Toilets,
		Area:        e.Area,
		Country:     e.Country,
		State:       e.State,
		City:        e.City,
		Address:     e.Address,
		Features:    nonNil(e.Features),
		Images:      nonNil(e.Images),
		Videos:      nonNil(e.Videos),
		Visible:     e.Visible,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToPropertyEntities(models []model.PropertyModel) []entity.Property {
	properties := make([]entity.Property, len(models))
	for i := range models {
		properties[i] = *ToPropertyEntity(&models[i])
	}
	return properties
}

// nonNil keeps empty lists serialised as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
