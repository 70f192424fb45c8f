package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingRent     ListingType = "Rent"
	ListingSale     ListingType = "Sale"
	ListingShortlet ListingType = "Shortlet"
)

type Property struct {
	ID          string      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string      `gorm:"type:uuid;index" json:"userId"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	Price       float64     `gorm:"index" json:"price"`
	Type        ListingType `gorm:"type:varchar(20)" json:"type"`
	Category    string      `gorm:"index" json:"category"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	Toilets     int         `json:"toilets"`
	Area        float64     `json:"area"`
	Country     string      `json:"country"`
	State       string      `gorm:"index" json:"state"`
	City        string      `gorm:"index" json:"city"`
	Address     string      `json:"address"`
	Features    []string    `gorm:"type:text;serializer:json" json:"features"`
	Images      []string    `gorm:"type:text;serializer:json" json:"images"`
	Videos      []string    `gorm:"type:text;serializer:json" json:"videos"`
	Visible     bool        `gorm:"index" json:"visible"`
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
