package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/reconcile"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/logger"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

// Publisher pushes change events to connected clients (the ws hub).
type Publisher interface {
	Publish(message []byte)
}

// LedgerService enforces the create-transaction-then-adjust-stock contract:
// every movement persists a transaction row and applies its signed quantity
// delta to the owning item, in that order, within one logical call.
type LedgerService interface {
	RecordTransaction(req *model.Transaction, userName string) (*model.Transaction, error)
	UpdateTransaction(id uuid.UUID, req *UpdateTransactionRequest, updaterID string) (*model.Transaction, error)
	DeleteTransaction(id uuid.UUID, deleterID string) error
	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

// UpdateTransactionRequest carries a field-level partial update. Blank or
// nil fields are left untouched (no-overwrite-with-blank policy). Stock is
// never re-derived on update.
type UpdateTransactionRequest struct {
	Status     string     `json:"status" validate:"omitempty,oneof=pending approved completed cancelled"`
	Notes      string     `json:"notes"`
	Borrower   string     `json:"borrower"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	DueDate    *string    `json:"due_date"`    // YYYY-MM-DD
	ReturnDate *string    `json:"return_date"` // YYYY-MM-DD
}

type ledgerService struct {
	itemRepo repository.ItemRepository
	txRepo   repository.TransactionRepository
	hub      Publisher
	broker   *reconcile.Broker

	// reverseOnDelete applies the inverse stock delta before a row is
	// removed. Off by default: the log book is treated as append-only.
	reverseOnDelete bool
}

func NewLedgerService(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository, hub Publisher, broker *reconcile.Broker, reverseOnDelete bool) LedgerService {
	return &ledgerService{
		itemRepo:        itemRepo,
		txRepo:          txRepo,
		hub:             hub,
		broker:          broker,
		reverseOnDelete: reverseOnDelete,
	}
}

func (s *ledgerService) RecordTransaction(req *model.Transaction, userName string) (*model.Transaction, error) {
	// 1. Validasi input
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	// 2. Defaults: date now, borrow starts pending, everything else completed
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	if req.Status == "" {
		if req.Type == model.TxBorrow {
			req.Status = model.TxPending
		} else {
			req.Status = model.TxCompleted
		}
	}

	// 3. Item must exist before we write anything
	item, err := s.itemRepo.FindByID(req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "item", ID: req.ItemID.String()}
		}
		return nil, &PersistenceError{Op: "item lookup", Err: err}
	}

	userID := req.UserID.String()
	req.CreatedBy = userID
	req.UpdatedBy = userID

	// 4. Persist the transaction row
	if err := s.txRepo.Create(req); err != nil {
		return nil, &PersistenceError{Op: "transaction insert", Err: err}
	}

	// 5. Apply the signed stock delta. A failure here leaves the row in
	// place; the gap is reported and cmd/reconcile-stock can repair it.
	delta := req.Type.Sign() * req.Quantity
	newStock := item.CurrentStock + delta
	if delta != 0 {
		if err := s.itemRepo.AdjustStock(req.ItemID, delta, userID); err != nil {
			logger.LogError("ledger", "RecordTransaction", err, logrus.Fields{
				"transaction_id": req.ID,
				"item_id":        req.ItemID,
				"delta":          delta,
			})
			return nil, &PersistenceError{Op: "stock update", Err: err}
		}
		if newStock < 0 {
			logger.Get().WithFields(logrus.Fields{
				"item_id": req.ItemID,
				"code":    item.Code,
				"stock":   newStock,
			}).Warn("stock went negative")
		}
	}

	if s.broker != nil {
		s.broker.Publish("items")
		s.broker.Publish("transactions")
	}

	// 6. Broadcast ke WebSocket
	if s.hub != nil {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "transaction_created",
			"transaction": map[string]interface{}{
				"id":       req.ID,
				"type":     req.Type,
				"quantity": req.Quantity,
				"item_id":  item.ID,
				"item": map[string]interface{}{
					"name": item.Name,
					"code": item.Code,
				},
				"new_stock": newStock,
			},
			"message": fmt.Sprintf("%s recorded %s of %d %s '%s'", userName, req.Type, req.Quantity, item.Unit, item.Name),
		}
		msg, _ := json.Marshal(payload)
		s.hub.Publish(msg)
	}

	return req, nil
}

func (s *ledgerService) UpdateTransaction(id uuid.UUID, req *UpdateTransactionRequest, updaterID string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	fields := map[string]interface{}{}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
	}
	if req.Borrower != "" {
		fields["borrower"] = req.Borrower
	}
	if req.SupplierID != nil && *req.SupplierID != uuid.Nil {
		fields["supplier_id"] = *req.SupplierID
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, &ValidationError{Field: "due_date", Reason: "use YYYY-MM-DD"}
		}
		fields["due_date"] = due
	}
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		ret, err := time.Parse("2006-01-02", *req.ReturnDate)
		if err != nil {
			return nil, &ValidationError{Field: "return_date", Reason: "use YYYY-MM-DD"}
		}
		fields["return_date"] = ret
	}

	if len(fields) > 0 {
		fields["updated_by"] = updaterID
		if err := s.txRepo.UpdateFields(id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "transaction", ID: id.String()}
			}
			return nil, &PersistenceError{Op: "transaction update", Err: err}
		}
		if s.broker != nil {
			s.broker.Publish("transactions")
		}
	}

	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "transaction", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "transaction lookup", Err: err}
	}
	return tx, nil
}

func (s *ledgerService) DeleteTransaction(id uuid.UUID, deleterID string) error {
	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "transaction", ID: id.String()}
		}
		return &PersistenceError{Op: "transaction lookup", Err: err}
	}

	if s.reverseOnDelete {
		if delta := tx.Type.Sign() * tx.Quantity; delta != 0 {
			if err := s.itemRepo.AdjustStock(tx.ItemID, -delta, deleterID); err != nil {
				logger.LogError("ledger", "DeleteTransaction", err, logrus.Fields{
					"transaction_id": id,
					"item_id":        tx.ItemID,
				})
				return &PersistenceError{Op: "stock reversal", Err: err}
			}
		}
	}

	if err := s.txRepo.Delete(id, deleterID); err != nil {
		return &PersistenceError{Op: "transaction delete", Err: err}
	}

	if s.broker != nil {
		s.broker.Publish("items")
		s.broker.Publish("transactions")
	}
	return nil
}

func (s *ledgerService) GetAllTransactions() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *ledgerService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "transaction", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "transaction lookup", Err: err}
	}
	return tx, nil
}
