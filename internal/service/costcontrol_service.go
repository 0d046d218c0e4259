package service

import (
	"errors"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/export"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/logger"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

// CostRow is one price-list line of the monthly laundry report.
type CostRow struct {
	No             int    `json:"no"`
	ItemName       string `json:"item_name"`
	PickUpDate     string `json:"pick_up_date"` // last out date in period, or "-"
	QtyPickUp      int    `json:"qty_pick_up"`
	Pending        int    `json:"pending"`
	Returned       int    `json:"returned"`
	PendingDisplay int    `json:"pending_display"` // max(0, pending - returned)
	Price          int64  `json:"price"`
	TotalCost      int64  `json:"total_cost"`
}

// CostReport is the monthly aggregate of the laundry log book.
type CostReport struct {
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	Rows           []CostRow `json:"rows"`
	TotalCost      int64     `json:"total_cost"`
	TotalProcessed int       `json:"total_processed"`
	TotalPending   int       `json:"total_pending"`
	AverageCost    int64     `json:"average_cost"`
}

// AggregateMonthly filters entries to (month, year) and sums them per price
// definition: qtyPickUp from out quantities, total cost = qtyPickUp × price,
// displayed pending never negative.
func AggregateMonthly(defs []model.CostItemDefinition, entries []model.LogBookEntry, month, year int) *CostReport {
	report := &CostReport{Month: month, Year: year}

	var filtered []model.LogBookEntry
	for _, e := range entries {
		if int(e.Date.Month()) == month && e.Date.Year() == year {
			filtered = append(filtered, e)
		}
	}

	for _, def := range defs {
		row := CostRow{No: def.ID, ItemName: def.Name, PickUpDate: "-", Price: def.Price}
		var lastPickUp time.Time
		for _, e := range filtered {
			if e.DefinitionID != def.ID {
				continue
			}
			row.QtyPickUp += e.OutQuantity
			row.Pending += e.PendingQuantity
			row.Returned += e.ReturnedQuantity
			if e.Date.After(lastPickUp) {
				lastPickUp = e.Date
			}
		}
		if !lastPickUp.IsZero() {
			row.PickUpDate = lastPickUp.Format("2006-01-02")
		}
		row.PendingDisplay = row.Pending - row.Returned
		if row.PendingDisplay < 0 {
			row.PendingDisplay = 0
		}
		row.TotalCost = int64(row.QtyPickUp) * row.Price

		report.Rows = append(report.Rows, row)
		report.TotalCost += row.TotalCost
		report.TotalProcessed += row.QtyPickUp
		report.TotalPending += row.PendingDisplay
	}

	if report.TotalProcessed > 0 {
		report.AverageCost = int64(math.Round(float64(report.TotalCost) / float64(report.TotalProcessed)))
	}
	return report
}

type CostControlService interface {
	MonthlyReport(month, year int) (*CostReport, error)
	AddEntry(req *model.LogBookEntry, userID string) error
	UpdateEntry(id uuid.UUID, req *model.LogBookEntry, userID string) (*model.LogBookEntry, error)
	DeleteEntry(id uuid.UUID) error
	GetEntries() ([]model.LogBookEntry, error)
	GetDefinitions() ([]model.CostItemDefinition, error)
	SetPrice(id int, price int64) error
	ImportPrices(r io.Reader) (int, error)
	ReportCSV(month, year int) ([]string, [][]string, error)
}

type costControlService struct {
	logRepo repository.LogBookRepository
	defRepo repository.CostDefinitionRepository
}

func NewCostControlService(logRepo repository.LogBookRepository, defRepo repository.CostDefinitionRepository) CostControlService {
	return &costControlService{logRepo: logRepo, defRepo: defRepo}
}

func (s *costControlService) MonthlyReport(month, year int) (*CostReport, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Field: "month", Reason: "must be 1-12"}
	}
	defs, err := s.defRepo.FindAll()
	if err != nil {
		return nil, &PersistenceError{Op: "definition list", Err: err}
	}
	entries, err := s.logRepo.FindByMonth(month, year)
	if err != nil {
		return nil, &PersistenceError{Op: "log book list", Err: err}
	}
	return AggregateMonthly(defs, entries, month, year), nil
}

func (s *costControlService) AddEntry(req *model.LogBookEntry, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.logRepo.Create(req); err != nil {
		return &PersistenceError{Op: "log book insert", Err: err}
	}
	return nil
}

func (s *costControlService) UpdateEntry(id uuid.UUID, req *model.LogBookEntry, userID string) (*model.LogBookEntry, error) {
	existing, err := s.logRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "log book entry", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "log book lookup", Err: err}
	}

	if !req.Date.IsZero() {
		existing.Date = req.Date
	}
	if req.DefinitionID > 0 {
		existing.DefinitionID = req.DefinitionID
	}
	existing.OutQuantity = req.OutQuantity
	existing.InQuantity = req.InQuantity
	existing.PendingQuantity = req.PendingQuantity
	existing.ReturnedQuantity = req.ReturnedQuantity
	if req.ReturnedDate != nil {
		existing.ReturnedDate = req.ReturnedDate
	}
	if req.ReturnedImageURL != "" {
		existing.ReturnedImageURL = req.ReturnedImageURL
	}
	existing.UpdatedBy = userID

	if err := s.logRepo.Update(existing); err != nil {
		return nil, &PersistenceError{Op: "log book update", Err: err}
	}
	return existing, nil
}

func (s *costControlService) DeleteEntry(id uuid.UUID) error {
	if err := s.logRepo.Delete(id); err != nil {
		return &PersistenceError{Op: "log book delete", Err: err}
	}
	return nil
}

func (s *costControlService) GetEntries() ([]model.LogBookEntry, error) {
	return s.logRepo.FindAll()
}

func (s *costControlService) GetDefinitions() ([]model.CostItemDefinition, error) {
	return s.defRepo.FindAll()
}

func (s *costControlService) SetPrice(id int, price int64) error {
	if price < 0 {
		price = 0
	}
	if err := s.defRepo.UpsertPrice(id, price); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "cost item", ID: strconv.Itoa(id)}
		}
		return &PersistenceError{Op: "price update", Err: err}
	}
	return nil
}

// ImportPrices applies a price-list CSV. Expected columns itemId,price
// (case-insensitive, extra columns ignored); a row with a non-numeric cell
// is dropped. Returns how many prices were applied.
func (s *costControlService) ImportPrices(r io.Reader) (int, error) {
	records, err := export.ParseCSV(r, "itemId", "price")
	if err != nil {
		return 0, &ValidationError{Reason: "CSV harus memiliki kolom: itemId,price"}
	}

	applied := 0
	for _, rec := range records {
		id, err := strconv.Atoi(rec["itemId"])
		if err != nil {
			continue
		}
		price, err := strconv.ParseInt(rec["price"], 10, 64)
		if err != nil {
			continue
		}
		if err := s.defRepo.UpsertPrice(id, price); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unknown definition ids are skipped, same as unmapped columns.
				logger.Get().WithFields(logrus.Fields{"item_id": id}).Warn("price import: unknown item id")
				continue
			}
			return applied, &PersistenceError{Op: "price update", Err: err}
		}
		applied++
	}

	if applied == 0 {
		return 0, &ValidationError{Reason: "tidak ada data harga yang valid"}
	}
	return applied, nil
}

func (s *costControlService) ReportCSV(month, year int) ([]string, [][]string, error) {
	report, err := s.MonthlyReport(month, year)
	if err != nil {
		return nil, nil, err
	}
	headers := []string{"No", "Item", "TanggalPickUp", "QtyPickUp", "Pending", "Returned", "Harga(Rp)", "TotalBiaya(Rp)"}
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.No),
			r.ItemName,
			r.PickUpDate,
			strconv.Itoa(r.QtyPickUp),
			strconv.Itoa(r.Pending),
			strconv.Itoa(r.Returned),
			strconv.FormatInt(r.Price, 10),
			strconv.FormatInt(r.TotalCost, 10),
		})
	}
	return headers, rows, nil
}
