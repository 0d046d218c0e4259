package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByItem(itemID uuid.UUID) ([]model.Transaction, error)
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID, deletedBy string) error
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
	SignedTotals() (map[uuid.UUID]int, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalItems     int64 `json:"total_items"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Item").Preload("User").Preload("Supplier").
		Order("date DESC, created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Item").Preload("User").Preload("Supplier").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) FindByItem(itemID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Where("item_id = ?", itemID).Order("date ASC").Find(&transactions).Error
	return transactions, err
}

// UpdateFields patches only the given columns; callers are expected to have
// dropped blank values already (no-overwrite-with-blank policy).
func (r *transactionRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.Model(&model.Transaction{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Transaction{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate movements per hari; borrow counts as outbound, return as inbound.
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(date) as date,
			COALESCE(SUM(CASE WHEN type IN ('in', 'return') THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type IN ('out', 'borrow') THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Item{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Item{}).Where("current_stock <= min_stock").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Item{}).
		Select("COALESCE(SUM(current_stock * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// SignedTotals recomputes what each item's stock should be from its full
// transaction history. Used by the reconcile-stock job.
func (r *transactionRepo) SignedTotals() (map[uuid.UUID]int, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			item_id,
			COALESCE(SUM(CASE
				WHEN type IN ('in', 'return') THEN quantity
				WHEN type IN ('out', 'borrow') THEN -quantity
				ELSE 0 END), 0) as total
		`).
		Group("item_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]int)
	for rows.Next() {
		var itemID uuid.UUID
		var total int
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, err
		}
		totals[itemID] = total
	}
	return totals, nil
}
