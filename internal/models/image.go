package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image holds only the CDN URL; binary storage is the upload service's
// problem. Images never outlive their product.
type Image struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	StoreID   string    `gorm:"type:uuid;not null;index" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
