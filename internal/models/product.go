package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product.Price is a canonical decimal string, never a float; it goes into a
// numeric column and comes back out unchanged.
type Product struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Price       string    `gorm:"type:numeric;not null" json:"price"`
	Stock       int       `gorm:"not null" json:"stock"`
	CategoryID  *string   `gorm:"type:uuid;index" json:"category_id"`
	StoreID     string    `gorm:"type:uuid;not null;index" json:"store_id"`
	Images      []Image   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
