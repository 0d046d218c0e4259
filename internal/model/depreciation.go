package model

import (
	"time"

	"github.com/google/uuid"
)

type DepreciationStatus string

const (
	DepreciationPending  DepreciationStatus = "pending"
	DepreciationApproved DepreciationStatus = "approved"
	DepreciationRejected DepreciationStatus = "rejected"
)

// Depreciation records items written off (rusak/hilang/usang).
// Approval is bookkeeping only; stock is moved by a separate "out" transaction.
type Depreciation struct {
	BaseModel
	ItemID   uuid.UUID `gorm:"type:uuid;not null" json:"item_id" validate:"uuid_required"`
	Item     Item      `json:"item" validate:"-"`
	Quantity int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Reason   string    `gorm:"type:varchar(255);not null" json:"reason" validate:"required"`
	Notes    string    `json:"notes"`

	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`

	Date   time.Time          `gorm:"not null" json:"date"`
	Status DepreciationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
