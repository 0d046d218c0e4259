package model

import "time"

// CostItemDefinition is one line of the laundry price list. The small integer
// id is stable because the price-import CSV addresses rows by number.
type CostItemDefinition struct {
	ID    int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name  string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Price int64  `gorm:"default:0" json:"price"`
}

func (CostItemDefinition) TableName() string { return "cost_item_definitions" }

// LogBookEntry is one day-line of the laundry log book: linen sent out to the
// external laundry, what came back, and what is still pending.
type LogBookEntry struct {
	BaseModel
	Date             time.Time  `gorm:"type:date;not null" json:"date"`
	DefinitionID     int        `gorm:"not null" json:"item_id" validate:"required,gt=0"`
	OutQuantity      int        `gorm:"default:0" json:"out_quantity"`
	InQuantity       int        `gorm:"default:0" json:"in_quantity"`
	PendingQuantity  int        `gorm:"default:0" json:"pending_quantity"`
	ReturnedQuantity int        `gorm:"default:0" json:"returned_quantity"`
	ReturnedDate     *time.Time `gorm:"type:date" json:"returned_date,omitempty"`
	ReturnedImageURL string     `gorm:"type:varchar(512)" json:"returned_image_url,omitempty"`
}

func (LogBookEntry) TableName() string { return "log_book_entries" }

// DefaultCostItemDefinitions is the CM Coin Laundry price list seeded on boot.
func DefaultCostItemDefinitions() []CostItemDefinition {
	return []CostItemDefinition{
		{ID: 1, Name: "Bath Towel Baru", Price: 2600},
		{ID: 2, Name: "Bath Towel Lama", Price: 2600},
		{ID: 3, Name: "Bath Mat", Price: 2400},
		{ID: 4, Name: "Bed Sheet Single", Price: 3300},
		{ID: 5, Name: "Bed Sheet Double", Price: 3600},
		{ID: 6, Name: "Duvet Cover Single", Price: 4600},
		{ID: 7, Name: "Duvet Cover Double", Price: 5600},
		{ID: 8, Name: "Pillow Case Baru", Price: 1400},
		{ID: 9, Name: "Pillow Case Lama", Price: 1400},
		{ID: 10, Name: "Pillow Case (MIX)", Price: 1400},
		{ID: 11, Name: "Inner Duvet Single", Price: 15000},
		{ID: 12, Name: "Inner Duvet Double", Price: 25000},
		{ID: 13, Name: "Skarting Duvet Single", Price: 0},
		{ID: 14, Name: "Skarting Duvet Double", Price: 0},
		{ID: 15, Name: "Napkin", Price: 1200},
		{ID: 16, Name: "Cover Chair", Price: 2500},
		{ID: 17, Name: "Table Cloth", Price: 6000},
		{ID: 18, Name: "Bath Robe", Price: 0},
	}
}
