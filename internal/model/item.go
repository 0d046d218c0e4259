package model

import (
	"time"

	"github.com/google/uuid"
)

type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
)

// Item is a housekeeping inventory item (linen, amenities, cleaning supplies).
// CurrentStock hanya diubah oleh Ledger Service atau edit administratif.
type Item struct {
	BaseModel
	Code         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string     `gorm:"type:varchar(100)" json:"category"`
	Unit         string     `gorm:"type:varchar(20)" json:"unit"`
	MinStock     int        `gorm:"default:0" json:"min_stock"`
	CurrentStock int        `gorm:"default:0" json:"current_stock"`
	Location     string     `gorm:"type:varchar(100)" json:"location"`
	Condition    string     `gorm:"type:varchar(50)" json:"condition"`
	PurchaseDate *time.Time `gorm:"type:date" json:"purchase_date,omitempty"`
	Price        int64      `gorm:"default:0" json:"price"`
	Status       ItemStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	SupplierID *uuid.UUID `gorm:"type:uuid" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	// Relasi
	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}

// IsLowStock reports whether the item sits at or below its minimum level.
func (i *Item) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}
