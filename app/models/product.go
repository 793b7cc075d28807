package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Product is a catalog entry. Price is stored in pence to keep money integral;
// products are immutable after creation.
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	PriceInPence int64     `gorm:"not null" json:"price_in_pence" validate:"gte=0"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
