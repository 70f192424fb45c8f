package entity

import "time"

// Snapshots of business records read from the stores the feed watches.

type OrderEvent struct {
	ID        string
	OrderID   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StockEvent struct {
	ID        string
	Name      string
	Stock     int
	UpdatedAt time.Time
}

type ReviewEvent struct {
	ID          string
	ProductName string
	CreatedAt   time.Time
}

type SignupEvent struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type ContactEvent struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Events is everything one aggregation pass read.
type Events struct {
	Orders   []OrderEvent
	Stock    []StockEvent
	Reviews  []ReviewEvent
	Signups  []SignupEvent
	Contacts []ContactEvent
}
