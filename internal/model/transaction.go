package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxIn     TransactionType = "in"
	TxOut    TransactionType = "out"
	TxBorrow TransactionType = "borrow"
	TxReturn TransactionType = "return"
)

// Sign maps a movement type to its stock-delta direction.
// in/return menambah stok, out/borrow mengurangi stok.
func (t TransactionType) Sign() int {
	switch t {
	case TxIn, TxReturn:
		return 1
	case TxOut, TxBorrow:
		return -1
	default:
		return 0
	}
}

type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxApproved  TransactionStatus = "approved"
	TxCompleted TransactionStatus = "completed"
	TxCancelled TransactionStatus = "cancelled"
)

// Transaction is one inventory movement recorded by the Ledger Service.
// Stock is adjusted once, when the row is created; later status changes
// never re-derive stock.
type Transaction struct {
	BaseModel
	Type     TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=in out borrow return"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null" json:"item_id" validate:"uuid_required"`
	Item     Item            `json:"item" validate:"-"` // Relasi - skip validation
	Quantity int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`

	SupplierID *uuid.UUID `gorm:"type:uuid" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	Borrower string            `gorm:"type:varchar(255)" json:"borrower,omitempty"`
	Notes    string            `json:"notes"`
	Status   TransactionStatus `gorm:"type:varchar(20)" json:"status"`

	Date       time.Time  `gorm:"not null" json:"date"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// IsOverdue reports whether a borrow is past its due date and still open.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.Type == TxBorrow &&
		t.Status != TxCompleted &&
		t.DueDate != nil &&
		t.DueDate.Before(now)
}
