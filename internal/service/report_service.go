package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
)

// DashboardLowStockLimit caps the low-stock list shown on the dashboard.
const DashboardLowStockLimit = 5

type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// ClassifyStock buckets an item by how far above its minimum it sits. The
// medium band runs up to and including round(1.5 × min).
func ClassifyStock(current, min int) StockLevel {
	if current <= min {
		return StockLow
	}
	if current <= int(math.Round(1.5*float64(min))) {
		return StockMedium
	}
	return StockHigh
}

// LowStockItems filters items at or below their minimum. limit <= 0 means
// unlimited.
func LowStockItems(items []model.Item, limit int) []model.Item {
	var out []model.Item
	for _, item := range items {
		if item.IsLowStock() {
			out = append(out, item)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// OverdueTransactions returns open borrows past their due date.
func OverdueTransactions(txs []model.Transaction, now time.Time) []model.Transaction {
	var out []model.Transaction
	for i := range txs {
		if txs[i].IsOverdue(now) {
			out = append(out, txs[i])
		}
	}
	return out
}

// StatsCache is an optional read-through cache for dashboard aggregates.
type StatsCache interface {
	GetStats(ctx context.Context) (*repository.DashboardStats, bool)
	SetStats(ctx context.Context, stats *repository.DashboardStats)
}

type ReportService interface {
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetLowStock(limit int) []model.Item
	GetOverdueBorrows() ([]model.Transaction, error)
	ExportItems() ([]string, [][]string, error)
	ExportTransactions() ([]string, [][]string, error)
	ExportSuppliers() ([]string, [][]string, error)
	ExportCategories() ([]string, [][]string, error)
}

type reportService struct {
	txRepo       repository.TransactionRepository
	supplierRepo repository.SupplierRepository
	categoryRepo repository.CategoryRepository
	view         *ItemView
	cache        StatsCache
}

func NewReportService(txRepo repository.TransactionRepository, supplierRepo repository.SupplierRepository, categoryRepo repository.CategoryRepository, view *ItemView, cache StatsCache) ReportService {
	return &reportService{
		txRepo:       txRepo,
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
		view:         view,
		cache:        cache,
	}
}

func (s *reportService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetStats(ctx); ok {
			return stats, nil
		}
	}

	stats, err := s.txRepo.GetDashboardStats()
	if err != nil {
		return nil, &PersistenceError{Op: "dashboard stats", Err: err}
	}

	if s.cache != nil {
		s.cache.SetStats(ctx, stats)
	}
	return stats, nil
}

func (s *reportService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetStockMovement(startDate, endDate)
}

// GetLowStock serves from the reconciled item view, so freshly recorded
// movements show up before the next full refresh.
func (s *reportService) GetLowStock(limit int) []model.Item {
	return LowStockItems(s.view.Items(), limit)
}

func (s *reportService) GetOverdueBorrows() ([]model.Transaction, error) {
	txs, err := s.txRepo.FindAll()
	if err != nil {
		return nil, &PersistenceError{Op: "transaction list", Err: err}
	}
	return OverdueTransactions(txs, time.Now()), nil
}

func (s *reportService) ExportItems() ([]string, [][]string, error) {
	headers := []string{"Kode", "Nama", "Kategori", "Satuan", "StokMin", "StokSaatIni", "Status", "Lokasi", "Harga"}
	items := s.view.Items()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Code,
			it.Name,
			it.Category,
			it.Unit,
			strconv.Itoa(it.MinStock),
			strconv.Itoa(it.CurrentStock),
			string(ClassifyStock(it.CurrentStock, it.MinStock)),
			it.Location,
			strconv.FormatInt(it.Price, 10),
		})
	}
	return headers, rows, nil
}

func (s *reportService) ExportTransactions() ([]string, [][]string, error) {
	headers := []string{"Tanggal", "Tipe", "Barang", "Jumlah", "Status", "Peminjam", "Keterangan"}
	txs, err := s.txRepo.FindAll()
	if err != nil {
		return nil, nil, &PersistenceError{Op: "transaction list", Err: err}
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Item.Name,
			strconv.Itoa(tx.Quantity),
			string(tx.Status),
			tx.Borrower,
			tx.Notes,
		})
	}
	return headers, rows, nil
}

func (s *reportService) ExportSuppliers() ([]string, [][]string, error) {
	headers := []string{"Kode", "Nama", "Kontak", "Telepon", "Email", "Alamat", "Status"}
	suppliers, err := s.supplierRepo.FindAll()
	if err != nil {
		return nil, nil, &PersistenceError{Op: "supplier list", Err: err}
	}
	rows := make([][]string, 0, len(suppliers))
	for _, sp := range suppliers {
		rows = append(rows, []string{sp.Code, sp.Name, sp.ContactName, sp.Phone, sp.Email, sp.Address, string(sp.Status)})
	}
	return headers, rows, nil
}

func (s *reportService) ExportCategories() ([]string, [][]string, error) {
	headers := []string{"Kode", "Nama", "Deskripsi", "Status"}
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, nil, &PersistenceError{Op: "category list", Err: err}
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.Code, c.Name, c.Description, string(c.Status)})
	}
	return headers, rows, nil
}
