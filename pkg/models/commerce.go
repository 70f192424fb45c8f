package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Order.OrderID is the human readable reference shown to admins
// ("ORD-1001"), distinct from the row id.
type Order struct {
	ID          string      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     string      `gorm:"uniqueIndex;not null" json:"orderId"`
	UserID      string      `gorm:"type:uuid;index" json:"userId"`
	Total       float64     `json:"total"`
	OrderStatus OrderStatus `gorm:"type:varchar(20);default:'Pending'" json:"orderStatus"`
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

type Product struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `gorm:"index" json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type Review struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID string    `gorm:"type:uuid;index" json:"productId"`
	UserID    string    `gorm:"type:uuid" json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `gorm:"index" json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
