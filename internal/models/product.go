package models

import (
	"math"
	"time"
)

// Product represents an item tracked in the inventory.
// The price is stored as integer cents to keep 2-place precision; it is
// rendered as a floating decimal when serialized for callers.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Type        string    `json:"type" gorm:"type:varchar(50)" validate:"required"`
	SKU         string    `json:"sku" gorm:"column:sku;uniqueIndex;type:varchar(50)" validate:"required,min=3"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(255)" validate:"omitempty,url"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	PriceCents  int64     `json:"-" gorm:"column:price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCents converts a decimal price into integer cents, rounding to the
// nearest cent.
func ToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Price returns the product price as a floating decimal.
func (p *Product) Price() float64 {
	return float64(p.PriceCents) / 100
}

// Map returns the product as a plain field map for callers.
func (p *Product) Map() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"type":        p.Type,
		"sku":         p.SKU,
		"image_url":   p.ImageURL,
		"description": p.Description,
		"quantity":    p.Quantity,
		"price":       p.Price(),
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}
