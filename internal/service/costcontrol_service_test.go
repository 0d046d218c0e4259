package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

// Mock LogBookRepository
type mockLogBookRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*model.LogBookEntry
}

func newMockLogBookRepo() *mockLogBookRepo {
	return &mockLogBookRepo{entries: make(map[uuid.UUID]*model.LogBookEntry)}
}

func (m *mockLogBookRepo) Create(entry *model.LogBookEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *mockLogBookRepo) FindAll() ([]model.LogBookEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LogBookEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockLogBookRepo) FindByMonth(month, year int) ([]model.LogBookEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.LogBookEntry
	for _, e := range m.entries {
		if int(e.Date.Month()) == month && e.Date.Year() == year {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockLogBookRepo) FindByID(id uuid.UUID) (*model.LogBookEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockLogBookRepo) Update(entry *model.LogBookEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *mockLogBookRepo) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Mock CostDefinitionRepository
type mockDefRepo struct {
	mu   sync.Mutex
	defs map[int]*model.CostItemDefinition
}

func newMockDefRepo(defs ...model.CostItemDefinition) *mockDefRepo {
	m := &mockDefRepo{defs: make(map[int]*model.CostItemDefinition)}
	for i := range defs {
		d := defs[i]
		m.defs[d.ID] = &d
	}
	return m
}

func (m *mockDefRepo) FindAll() ([]model.CostItemDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CostItemDefinition, 0, len(m.defs))
	for id := 1; id <= len(m.defs)+30; id++ {
		if d, ok := m.defs[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDefRepo) UpsertPrice(id int, price int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.defs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Price = price
	return nil
}

func (m *mockDefRepo) SeedDefaults() error { return nil }

func (m *mockDefRepo) price(id int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defs[id].Price
}

func entry(defID int, date time.Time, out, pending, returned int) model.LogBookEntry {
	return model.LogBookEntry{
		Date:             date,
		DefinitionID:     defID,
		OutQuantity:      out,
		PendingQuantity:  pending,
		ReturnedQuantity: returned,
	}
}

func TestAggregateMonthly(t *testing.T) {
	defs := []model.CostItemDefinition{
		{ID: 1, Name: "Bath Towel Baru", Price: 2600},
		{ID: 2, Name: "Bath Mat", Price: 2400},
	}
	march5 := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	march20 := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	april2 := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	entries := []model.LogBookEntry{
		entry(1, march5, 6, 2, 0),
		entry(1, march20, 4, 0, 2),
		entry(2, march5, 3, 0, 0),
		entry(1, april2, 7, 1, 0), // different month, excluded
	}

	report := AggregateMonthly(defs, entries, 3, 2025)

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}

	towel := report.Rows[0]
	if towel.QtyPickUp != 10 {
		t.Errorf("towel qty: expected 10, got %d", towel.QtyPickUp)
	}
	if towel.TotalCost != 26000 {
		t.Errorf("towel total: expected 26000, got %d", towel.TotalCost)
	}
	if towel.PendingDisplay != 0 {
		t.Errorf("towel pending display: expected 0 (2 pending, 2 returned), got %d", towel.PendingDisplay)
	}
	if towel.PickUpDate != "2025-03-20" {
		t.Errorf("towel pick up date: expected last out date, got %s", towel.PickUpDate)
	}

	mat := report.Rows[1]
	if mat.QtyPickUp != 3 || mat.TotalCost != 7200 {
		t.Errorf("mat: expected 3/7200, got %d/%d", mat.QtyPickUp, mat.TotalCost)
	}

	if report.TotalProcessed != 13 {
		t.Errorf("total processed: expected 13, got %d", report.TotalProcessed)
	}
	if report.TotalCost != 33200 {
		t.Errorf("total cost: expected 33200, got %d", report.TotalCost)
	}
	// 33200 / 13 = 2553.8..., rounded
	if report.AverageCost != 2554 {
		t.Errorf("average cost: expected 2554, got %d", report.AverageCost)
	}
}

func TestAggregateMonthly_NoActivity(t *testing.T) {
	defs := []model.CostItemDefinition{{ID: 1, Name: "Napkin", Price: 1200}}

	report := AggregateMonthly(defs, nil, 7, 2025)

	if len(report.Rows) != 1 {
		t.Fatalf("expected price list row even without activity, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.PickUpDate != "-" {
		t.Errorf("expected pick up date placeholder, got %q", row.PickUpDate)
	}
	if row.QtyPickUp != 0 || row.TotalCost != 0 {
		t.Errorf("expected zero sums, got %d/%d", row.QtyPickUp, row.TotalCost)
	}
	if report.AverageCost != 0 {
		t.Errorf("expected average 0 with nothing processed, got %d", report.AverageCost)
	}
}

func TestAggregateMonthly_PendingNeverNegative(t *testing.T) {
	defs := []model.CostItemDefinition{{ID: 1, Name: "Napkin", Price: 1200}}
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.LogBookEntry{entry(1, d, 5, 1, 4)} // returned more than pending

	report := AggregateMonthly(defs, entries, 5, 2025)

	if report.Rows[0].PendingDisplay != 0 {
		t.Errorf("expected pending display clamped to 0, got %d", report.Rows[0].PendingDisplay)
	}
	if report.TotalPending != 0 {
		t.Errorf("expected total pending 0, got %d", report.TotalPending)
	}
}

func TestMonthlyReport_BadMonth(t *testing.T) {
	svc := NewCostControlService(newMockLogBookRepo(), newMockDefRepo())

	for _, month := range []int{0, 13, -1} {
		_, err := svc.MonthlyReport(month, 2025)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("month %d: expected ValidationError, got %v", month, err)
		}
	}
}

func TestImportPrices(t *testing.T) {
	defRepo := newMockDefRepo(
		model.CostItemDefinition{ID: 1, Name: "Bath Towel Baru", Price: 2600},
		model.CostItemDefinition{ID: 2, Name: "Bath Mat", Price: 2400},
	)
	svc := NewCostControlService(newMockLogBookRepo(), defRepo)

	csv := "itemId,price\n1,3000\n2,2500\n"
	applied, err := svc.ImportPrices(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied, got %d", applied)
	}
	if defRepo.price(1) != 3000 || defRepo.price(2) != 2500 {
		t.Errorf("prices not applied: %d, %d", defRepo.price(1), defRepo.price(2))
	}
}

func TestImportPrices_CaseInsensitiveHeadersExtraColumns(t *testing.T) {
	defRepo := newMockDefRepo(model.CostItemDefinition{ID: 1, Name: "Napkin", Price: 1200})
	svc := NewCostControlService(newMockLogBookRepo(), defRepo)

	csv := "ITEMID,Catatan,PRICE\n1,dari vendor,1500\n"
	applied, err := svc.ImportPrices(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 applied, got %d", applied)
	}
	if defRepo.price(1) != 1500 {
		t.Errorf("expected price 1500, got %d", defRepo.price(1))
	}
}

func TestImportPrices_SkipsBadRows(t *testing.T) {
	defRepo := newMockDefRepo(model.CostItemDefinition{ID: 1, Name: "Napkin", Price: 1200})
	svc := NewCostControlService(newMockLogBookRepo(), defRepo)

	// Non-numeric cells and unknown ids drop the row, valid rows still apply.
	csv := "itemId,price\nabc,3000\n1,xyz\n99,500\n1,1800\n"
	applied, err := svc.ImportPrices(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 applied, got %d", applied)
	}
	if defRepo.price(1) != 1800 {
		t.Errorf("expected price 1800, got %d", defRepo.price(1))
	}
}

func TestImportPrices_NoValidRows(t *testing.T) {
	defRepo := newMockDefRepo(model.CostItemDefinition{ID: 1, Name: "Napkin", Price: 1200})
	svc := NewCostControlService(newMockLogBookRepo(), defRepo)

	_, err := svc.ImportPrices(strings.NewReader("itemId,price\nabc,def\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if defRepo.price(1) != 1200 {
		t.Errorf("price should be untouched, got %d", defRepo.price(1))
	}
}

func TestImportPrices_MissingColumn(t *testing.T) {
	svc := NewCostControlService(newMockLogBookRepo(), newMockDefRepo())

	_, err := svc.ImportPrices(strings.NewReader("itemId,jumlah\n1,5\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSetPrice_ClampsNegative(t *testing.T) {
	defRepo := newMockDefRepo(model.CostItemDefinition{ID: 1, Name: "Napkin", Price: 1200})
	svc := NewCostControlService(newMockLogBookRepo(), defRepo)

	if err := svc.SetPrice(1, -500); err != nil {
		t.Fatalf("set price failed: %v", err)
	}
	if defRepo.price(1) != 0 {
		t.Errorf("expected negative price clamped to 0, got %d", defRepo.price(1))
	}
}

func TestSetPrice_UnknownItem(t *testing.T) {
	svc := NewCostControlService(newMockLogBookRepo(), newMockDefRepo())

	err := svc.SetPrice(42, 100)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateEntry_MergesFields(t *testing.T) {
	logRepo := newMockLogBookRepo()
	svc := NewCostControlService(logRepo, newMockDefRepo(model.CostItemDefinition{ID: 1, Name: "Napkin"}))

	e := entry(1, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 5, 5, 0)
	if err := svc.AddEntry(&e, "admin"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	returned := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateEntry(e.ID, &model.LogBookEntry{
		DefinitionID:     1,
		OutQuantity:      5,
		PendingQuantity:  0,
		ReturnedQuantity: 5,
		ReturnedDate:     &returned,
	}, "admin")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ReturnedQuantity != 5 || updated.PendingQuantity != 0 {
		t.Errorf("quantities not updated: %+v", updated)
	}
	if !updated.Date.Equal(e.Date) {
		t.Errorf("zero date should not overwrite existing date")
	}
	if updated.ReturnedDate == nil || !updated.ReturnedDate.Equal(returned) {
		t.Errorf("returned date not set")
	}
}

func TestDefaultPriceList(t *testing.T) {
	defs := model.DefaultCostItemDefinitions()
	if len(defs) != 18 {
		t.Fatalf("expected 18 price list rows, got %d", len(defs))
	}
	if defs[0].Name != "Bath Towel Baru" || defs[0].Price != 2600 {
		t.Errorf("unexpected first row: %+v", defs[0])
	}
	seen := make(map[int]bool)
	for _, d := range defs {
		if seen[d.ID] {
			t.Errorf("duplicate id %d", d.ID)
		}
		seen[d.ID] = true
	}
}
