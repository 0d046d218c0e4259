package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/reconcile"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
)

// Mock ItemRepository
type mockItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Item

	adjustErr   error
	adjustCalls int
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (m *mockItemRepo) put(item *model.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
}

func (m *mockItemRepo) Create(item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) FindAll() ([]model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *mockItemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockItemRepo) FindByCode(code string) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Code == code {
			copied := *it
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockItemRepo) Update(item *model.Item) error {
	m.put(item)
	return nil
}

func (m *mockItemRepo) Delete(id uuid.UUID, deletedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *mockItemRepo) AdjustStock(id uuid.UUID, delta int, updatedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustCalls++
	if m.adjustErr != nil {
		return m.adjustErr
	}
	item, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CurrentStock += delta
	item.UpdatedBy = updatedBy
	return nil
}

func (m *mockItemRepo) stock(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].CurrentStock
}

// Mock TransactionRepository
type mockTxRepo struct {
	mu  sync.Mutex
	txs map[uuid.UUID]*model.Transaction

	createErr error
}

func newMockTxRepo() *mockTxRepo {
	return &mockTxRepo{txs: make(map[uuid.UUID]*model.Transaction)}
}

func (m *mockTxRepo) Create(tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	copied := *tx
	m.txs[tx.ID] = &copied
	return nil
}

func (m *mockTxRepo) FindAll() ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Transaction, 0, len(m.txs))
	for _, tx := range m.txs {
		out = append(out, *tx)
	}
	return out, nil
}

func (m *mockTxRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *tx
	return &copied, nil
}

func (m *mockTxRepo) FindByItem(itemID uuid.UUID) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Transaction
	for _, tx := range m.txs {
		if tx.ItemID == itemID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (m *mockTxRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"]; ok {
		tx.Status = model.TransactionStatus(v.(string))
	}
	if v, ok := fields["notes"]; ok {
		tx.Notes = v.(string)
	}
	if v, ok := fields["borrower"]; ok {
		tx.Borrower = v.(string)
	}
	if v, ok := fields["due_date"]; ok {
		d := v.(time.Time)
		tx.DueDate = &d
	}
	if v, ok := fields["return_date"]; ok {
		d := v.(time.Time)
		tx.ReturnDate = &d
	}
	return nil
}

func (m *mockTxRepo) Delete(id uuid.UUID, deletedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.txs, id)
	return nil
}

func (m *mockTxRepo) GetStockMovement(start, end time.Time) ([]repository.StockMovementData, error) {
	return nil, nil
}

func (m *mockTxRepo) GetDashboardStats() (*repository.DashboardStats, error) {
	return &repository.DashboardStats{}, nil
}

func (m *mockTxRepo) SignedTotals() (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := make(map[uuid.UUID]int)
	for _, tx := range m.txs {
		totals[tx.ItemID] += tx.Type.Sign() * tx.Quantity
	}
	return totals, nil
}

func (m *mockTxRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs)
}

// Mock Publisher
type mockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
}

func (m *mockPublisher) Publish(message []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func seedItem(repo *mockItemRepo, stock int) *model.Item {
	item := &model.Item{
		Code:         "LIN-001",
		Name:         "Sprei King",
		Category:     "Linen",
		Unit:         "pcs",
		MinStock:     5,
		CurrentStock: stock,
		Status:       model.ItemActive,
	}
	item.ID = uuid.New()
	repo.put(item)
	return item
}

func newTx(itemID uuid.UUID, txType model.TransactionType, qty int) *model.Transaction {
	return &model.Transaction{
		Type:     txType,
		ItemID:   itemID,
		UserID:   uuid.New(),
		Quantity: qty,
	}
}

func TestRecordTransaction_InAddsStock(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	tx, err := svc.RecordTransaction(newTx(item.ID, model.TxIn, 4), "budi")
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if got := itemRepo.stock(item.ID); got != 14 {
		t.Errorf("expected stock 14, got %d", got)
	}
	if tx.Status != model.TxCompleted {
		t.Errorf("expected status completed, got %s", tx.Status)
	}
	if tx.Date.IsZero() {
		t.Error("expected date to be defaulted")
	}
}

func TestRecordTransaction_OutSubtractsStock(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	if _, err := svc.RecordTransaction(newTx(item.ID, model.TxOut, 3), "budi"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if got := itemRepo.stock(item.ID); got != 7 {
		t.Errorf("expected stock 7, got %d", got)
	}
}

func TestRecordTransaction_BorrowDefaultsPending(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	tx, err := svc.RecordTransaction(newTx(item.ID, model.TxBorrow, 2), "budi")
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if tx.Status != model.TxPending {
		t.Errorf("expected status pending, got %s", tx.Status)
	}
	if got := itemRepo.stock(item.ID); got != 8 {
		t.Errorf("expected stock 8, got %d", got)
	}
}

func TestRecordTransaction_NegativeStockAllowed(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 2)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	if _, err := svc.RecordTransaction(newTx(item.ID, model.TxOut, 5), "budi"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if got := itemRepo.stock(item.ID); got != -3 {
		t.Errorf("expected stock -3, got %d", got)
	}
}

func TestRecordTransaction_SignedSumMatchesStock(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 0)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	moves := []struct {
		txType model.TransactionType
		qty    int
	}{
		{model.TxIn, 20},
		{model.TxOut, 7},
		{model.TxBorrow, 3},
		{model.TxReturn, 3},
		{model.TxOut, 4},
	}
	for _, mv := range moves {
		if _, err := svc.RecordTransaction(newTx(item.ID, mv.txType, mv.qty), "budi"); err != nil {
			t.Fatalf("record %s %d failed: %v", mv.txType, mv.qty, err)
		}
	}

	totals, _ := txRepo.SignedTotals()
	if got := itemRepo.stock(item.ID); got != totals[item.ID] {
		t.Errorf("stock %d does not match ledger sum %d", got, totals[item.ID])
	}
	if got := itemRepo.stock(item.ID); got != 9 {
		t.Errorf("expected stock 9, got %d", got)
	}
}

func TestRecordTransaction_ValidationFailureWritesNothing(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	cases := []*model.Transaction{
		newTx(item.ID, model.TxIn, 0),       // quantity zero
		newTx(item.ID, model.TxIn, -5),      // quantity negative
		newTx(item.ID, "transfer", 1),       // unknown type
		newTx(uuid.Nil, model.TxIn, 1),      // missing item id
		{Type: model.TxIn, ItemID: item.ID}, // missing user and quantity
	}
	for i, tx := range cases {
		_, err := svc.RecordTransaction(tx, "budi")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}

	if txRepo.count() != 0 {
		t.Errorf("expected no transactions persisted, got %d", txRepo.count())
	}
	if got := itemRepo.stock(item.ID); got != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got)
	}
}

func TestRecordTransaction_UnknownItem(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	_, err := svc.RecordTransaction(newTx(uuid.New(), model.TxIn, 1), "budi")
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if txRepo.count() != 0 {
		t.Errorf("expected no transactions persisted, got %d", txRepo.count())
	}
}

func TestRecordTransaction_StockUpdateFailureKeepsRow(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)
	itemRepo.adjustErr = errors.New("connection reset")

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	_, err := svc.RecordTransaction(newTx(item.ID, model.TxOut, 2), "budi")
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	// The row stays so reconcile-stock can repair the gap later.
	if txRepo.count() != 1 {
		t.Errorf("expected transaction row kept, got %d rows", txRepo.count())
	}
	if got := itemRepo.stock(item.ID); got != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got)
	}
}

func TestRecordTransaction_PublishesEvents(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	hub := &mockPublisher{}
	broker := reconcile.NewBroker()
	kicked := make(chan struct{}, 2)
	broker.Subscribe("items", func() { kicked <- struct{}{} })

	svc := NewLedgerService(itemRepo, txRepo, hub, broker, false)

	if _, err := svc.RecordTransaction(newTx(item.ID, model.TxIn, 1), "budi"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if hub.count() != 1 {
		t.Errorf("expected 1 ws broadcast, got %d", hub.count())
	}
	select {
	case <-kicked:
	default:
		t.Error("expected items change notification")
	}
}

func TestUpdateTransaction_PartialUpdateKeepsBlankFields(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)

	created, err := svc.RecordTransaction(&model.Transaction{
		Type:     model.TxBorrow,
		ItemID:   item.ID,
		UserID:   uuid.New(),
		Quantity: 2,
		Borrower: "Pak Agus",
		Notes:    "untuk kamar 305",
	}, "budi")
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	updated, err := svc.UpdateTransaction(created.ID, &UpdateTransactionRequest{
		Status: "completed",
	}, "admin")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Status != model.TxCompleted {
		t.Errorf("expected status completed, got %s", updated.Status)
	}
	if updated.Borrower != "Pak Agus" {
		t.Errorf("borrower was overwritten: %q", updated.Borrower)
	}
	if updated.Notes != "untuk kamar 305" {
		t.Errorf("notes were overwritten: %q", updated.Notes)
	}
	// Status change never re-derives stock.
	if got := itemRepo.stock(item.ID); got != 8 {
		t.Errorf("expected stock still 8, got %d", got)
	}
}

func TestUpdateTransaction_BadDueDate(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)
	created, _ := svc.RecordTransaction(newTx(item.ID, model.TxBorrow, 1), "budi")

	bad := "31-12-2025"
	_, err := svc.UpdateTransaction(created.ID, &UpdateTransactionRequest{DueDate: &bad}, "admin")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc := NewLedgerService(newMockItemRepo(), newMockTxRepo(), nil, nil, false)

	_, err := svc.UpdateTransaction(uuid.New(), &UpdateTransactionRequest{Status: "completed"}, "admin")
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteTransaction_DefaultKeepsStock(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, false)
	created, _ := svc.RecordTransaction(newTx(item.ID, model.TxOut, 3), "budi")

	if err := svc.DeleteTransaction(created.ID, "admin"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := itemRepo.stock(item.ID); got != 7 {
		t.Errorf("expected stock to stay 7, got %d", got)
	}
	if txRepo.count() != 0 {
		t.Errorf("expected row deleted, got %d rows", txRepo.count())
	}
}

func TestDeleteTransaction_ReverseOnDelete(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, true)
	created, _ := svc.RecordTransaction(newTx(item.ID, model.TxOut, 3), "budi")

	if err := svc.DeleteTransaction(created.ID, "admin"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := itemRepo.stock(item.ID); got != 10 {
		t.Errorf("expected stock restored to 10, got %d", got)
	}
}

func TestDeleteTransaction_ReversalFailureAborts(t *testing.T) {
	itemRepo := newMockItemRepo()
	txRepo := newMockTxRepo()
	item := seedItem(itemRepo, 10)

	svc := NewLedgerService(itemRepo, txRepo, nil, nil, true)
	created, _ := svc.RecordTransaction(newTx(item.ID, model.TxOut, 3), "budi")

	itemRepo.adjustErr = errors.New("connection reset")
	err := svc.DeleteTransaction(created.ID, "admin")
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if txRepo.count() != 1 {
		t.Errorf("expected row kept after failed reversal, got %d rows", txRepo.count())
	}
}
