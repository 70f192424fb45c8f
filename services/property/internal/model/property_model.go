package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID      string    `gorm:"column:user_id;type:uuid"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Type        string    `gorm:"column:type;type:varchar(20)"`
	Category    string    `gorm:"column:category"`
	Bedrooms    int       `gorm:"column:bedrooms"`
	Bathrooms   int       `gorm:"column:bathrooms"`
	Toilets     int       `gorm:"column:toilets"`
	Area        float64   `gorm:"column:area"`
	Country     string    `gorm:"column:country"`
	State       string    `gorm:"column:state"`
	City        string    `gorm:"column:city"`
	Address     string    `gorm:"column:address"`
	Features    []string  `gorm:"column:features;type:text;serializer:json"`
	Images      []string  `gorm:"column:images;type:text;serializer:json"`
	Videos      []string  `gorm:"column:videos;type:text;serializer:json"`
	Visible     bool      `gorm:"column:visible"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (PropertyModel) TableName() string {
	return "properties"
}

func (m *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
