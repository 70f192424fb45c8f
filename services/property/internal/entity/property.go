package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("property not found")
	ErrAllUploadsFailed = errors.New("all image uploads failed")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

type ListingType string

const (
	ListingRent     ListingType = "Rent"
	ListingSale     ListingType = "Sale"
	ListingShortlet ListingType = "Shortlet"
)

type Property struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Type        ListingType `json:"type"`
	Category    string      `json:"category"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	Toilets     int         `json:"toilets"`
	Area        float64     `json:"area"`
	Country     string      `json:"country"`
	State       string      `json:"state"`
	City        string      `json:"city"`
	Address     string      `json:"address"`
	Features    []string    `json:"features"`
	Images      []string    `json:"images"`
	Videos      []string    `json:"videos"`
	Visible     bool        `json:"visible"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PropertyPatch is a partial update; nil fields are left alone.
type PropertyPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Type        *ListingType `json:"type"`
	Category    *string      `json:"category"`
	Bedrooms    *int         `json:"bedrooms"`
	Bathrooms   *int         `json:"bathrooms"`
	Toilets     *int         `json:"toilets"`
	Area        *float64     `json:"area"`
	Country     *string      `json:"country"`
	State       *string      `json:"state"`
	City        *string      `json:"city"`
	Address     *string      `json:"address"`
	Features    *[]string    `json:"features"`
	Images      *[]string    `json:"images"`
	Videos      *[]string    `json:"videos"`
	Visible     *bool        `json:"visible"`
}

func (p PropertyPatch) Apply(dst *Property) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Bedrooms != nil {
		dst.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		dst.Bathrooms = *p.Bathrooms
	}
	if p.Toilets != nil {
		dst.Toilets = *p.Toilets
	}
	if p.Area != nil {
		dst.Area = *p.Area
	}
	if p.Country != nil {
		dst.Country = *p.Country
	}
	if p.State != nil {
		dst.State = *p.State
	}
	if p.City != nil {
		dst.City = *p.City
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Features != nil {
		dst.Features = *p.Features
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.Videos != nil {
		dst.Videos = *p.Videos
	}
	if p.Visible != nil {
		dst.Visible = *p.Visible
	}
}

// AdminQuery drives the admin listing table.
type AdminQuery struct {
	Search string
	Type   string
	Sort   string // price-asc, price-desc, newest; anything else is oldest first
	Page   int
	Limit  int
}
