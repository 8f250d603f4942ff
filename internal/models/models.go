package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID    uuid.UUID `gorm:"primaryKey"            json:"id"`
	Email string    `gorm:"uniqueIndex;not null"  json:"email"`
	Name  string    `json:"name,omitempty"`
	Role  string    `json:"role,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

const RoleAdmin = "admin"

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type MenuItem struct {
	ID       uuid.UUID `gorm:"primaryKey"  json:"id"`
	Name     string    `gorm:"not null"    json:"name"`
	Recipe   string    `json:"recipe"`
	Image    string    `json:"image"`
	Category string    `gorm:"index"       json:"category"`
	Price    float64   `gorm:"not null"    json:"price"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID      uuid.UUID `gorm:"primaryKey" json:"id"`
	Name    string    `json:"name"`
	Details string    `json:"details"`
	Rating  float64   `json:"rating"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID         uuid.UUID `gorm:"primaryKey"      json:"id"`
	Email      string    `gorm:"index;not null"  json:"email"`
	MenuItemID uuid.UUID `gorm:"not null"        json:"menu_item_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Price      float64   `json:"price"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Payment is immutable once written. TransactionID carries a unique index so
// a double-submitted confirmation cannot produce a second record.
type Payment struct {
	ID            uuid.UUID `gorm:"primaryKey"            json:"id"`
	Email         string    `gorm:"index;not null"        json:"email"`
	Price         float64   `gorm:"not null"              json:"price"`
	TransactionID string    `gorm:"uniqueIndex;not null"  json:"transactionId"`
	Status        string    `json:"status"`
	CartIDs       []string  `gorm:"serializer:json"       json:"cartIds"`
	MenuItemIDs   []string  `gorm:"serializer:json"       json:"menuItemIds"`
	Date          time.Time `json:"date"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
