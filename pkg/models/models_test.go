package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Name:     "Test User",
		Password: "password",
		Role:     RoleAdmin,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestNotification_BeforeCreate(t *testing.T) {
	n := &Notification{
		UserID:  "admin-1",
		Type:    NotificationOrder,
		Message: "New order ORD-1 received.",
	}

	err := n.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)
}

func TestProperty_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-property-id"
	p := &Property{ID: existingID, Title: "Duplex"}

	err := p.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, p.ID)
}

func TestSourceRows_BeforeCreate(t *testing.T) {
	order := &Order{OrderID: "ORD-1"}
	product := &Product{Name: "Lamp"}
	review := &Review{}
	contact := &Contact{Name: "Ada"}

	assert.NoError(t, order.BeforeCreate(nil))
	assert.NoError(t, product.BeforeCreate(nil))
	assert.NoError(t, review.BeforeCreate(nil))
	assert.NoError(t, contact.BeforeCreate(nil))

	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, product.ID)
	assert.NotEmpty(t, review.ID)
	assert.NotEmpty(t, contact.ID)
	assert.NotEqual(t, order.ID, product.ID)
}

func TestAll(t *testing.T) {
	assert.Len(t, All(), 7)
}
