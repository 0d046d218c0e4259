package model

type MasterStatus string

const (
	MasterActive   MasterStatus = "active"
	MasterInactive MasterStatus = "inactive"
)

// Category is master data referenced by items by name.
type Category struct {
	BaseModel
	Code        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string       `json:"description"`
	Status      MasterStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}

// Supplier is master data referenced by items and incoming transactions.
// No cascading delete: items keep their supplier_id even if the row goes.
type Supplier struct {
	BaseModel
	Code        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactName string       `gorm:"type:varchar(255)" json:"contact_name"`
	Phone       string       `gorm:"type:varchar(30)" json:"phone"`
	Email       string       `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address     string       `json:"address"`
	Status      MasterStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}
