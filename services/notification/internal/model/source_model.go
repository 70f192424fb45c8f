package model

import "time"

type OrderModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     string    `gorm:"column:order_id"`
	OrderStatus string    `gorm:"column:order_status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type ProductModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name"`
	Stock     int       `gorm:"column:stock"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ProductModel) TableName() string {
	return "products"
}

// ReviewRow is a pending review joined with its product name.
type ReviewRow struct {
	ID          string    `gorm:"column:id"`
	ProductName *string   `gorm:"column:product_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type ContactModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name"`
	Read      bool      `gorm:"column:read"`
	Archived  bool      `gorm:"column:archived"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ContactModel) TableName() string {
	return "contacts"
}
