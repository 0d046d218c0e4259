package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/reconcile"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

type ItemService interface {
	CreateItem(req *model.Item, userID, userName string) error
	UpdateItem(id uuid.UUID, req *model.Item, userID, userName string) (*model.Item, error)
	DeleteItem(id uuid.UUID, userID string) error
	GetAllItems() ([]model.Item, error)
	GetItemByID(id uuid.UUID) (*model.Item, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	hub      Publisher
	broker   *reconcile.Broker
	view     *ItemView
}

func NewItemService(itemRepo repository.ItemRepository, hub Publisher, broker *reconcile.Broker, view *ItemView) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		hub:      hub,
		broker:   broker,
		view:     view,
	}
}

func (s *itemService) CreateItem(req *model.Item, userID, userName string) error {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	// 2. Cek duplikasi kode barang
	existing, err := s.itemRepo.FindByCode(req.Code)
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return &ConflictError{Field: "code", Value: req.Code}
	}

	if req.Status == "" {
		req.Status = model.ItemActive
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.itemRepo.Create(req); err != nil {
		return &PersistenceError{Op: "item insert", Err: err}
	}

	// Optimistic: show the new item before the next authoritative refresh.
	if s.view != nil {
		created := *req
		s.view.Apply(func(items []model.Item) []model.Item {
			return append(items, created)
		})
	}
	if s.broker != nil {
		s.broker.Publish("items")
	}

	s.broadcast("item_created", req, fmt.Sprintf("%s created item '%s'", userName, req.Name))
	return nil
}

func (s *itemService) UpdateItem(id uuid.UUID, req *model.Item, userID, userName string) (*model.Item, error) {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "item", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "item lookup", Err: err}
	}

	if req.Code != "" && req.Code != existing.Code {
		dup, err := s.itemRepo.FindByCode(req.Code)
		if err == nil && dup != nil && dup.ID != id {
			return nil, &ConflictError{Field: "code", Value: req.Code}
		}
		existing.Code = req.Code
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.Unit != "" {
		existing.Unit = req.Unit
	}
	if req.Location != "" {
		existing.Location = req.Location
	}
	if req.Condition != "" {
		existing.Condition = req.Condition
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.SupplierID != nil {
		existing.SupplierID = req.SupplierID
	}
	if req.PurchaseDate != nil {
		existing.PurchaseDate = req.PurchaseDate
	}
	existing.MinStock = req.MinStock
	existing.Price = req.Price
	// Administrative stock edit: the one write path besides the ledger that
	// may set current_stock directly.
	existing.CurrentStock = req.CurrentStock
	existing.UpdatedBy = userID

	if err := s.itemRepo.Update(existing); err != nil {
		return nil, &PersistenceError{Op: "item update", Err: err}
	}

	if s.view != nil {
		updated := *existing
		s.view.Apply(func(items []model.Item) []model.Item {
			for i := range items {
				if items[i].ID == updated.ID {
					items[i] = updated
				}
			}
			return items
		})
	}
	if s.broker != nil {
		s.broker.Publish("items")
	}

	s.broadcast("item_updated", existing, fmt.Sprintf("%s updated item '%s'", userName, existing.Name))
	return existing, nil
}

func (s *itemService) DeleteItem(id uuid.UUID, userID string) error {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "item", ID: id.String()}
		}
		return &PersistenceError{Op: "item lookup", Err: err}
	}

	// Soft delete: rows referenced by transactions stay resolvable.
	if err := s.itemRepo.Delete(id, userID); err != nil {
		return &PersistenceError{Op: "item delete", Err: err}
	}

	if s.view != nil {
		s.view.Apply(func(items []model.Item) []model.Item {
			out := items[:0]
			for _, it := range items {
				if it.ID != id {
					out = append(out, it)
				}
			}
			return out
		})
	}
	if s.broker != nil {
		s.broker.Publish("items")
	}

	s.broadcast("item_deleted", existing, fmt.Sprintf("item '%s' deleted", existing.Name))
	return nil
}

func (s *itemService) GetAllItems() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetItemByID(id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "item", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "item lookup", Err: err}
	}
	return item, nil
}

func (s *itemService) broadcast(action string, item *model.Item, message string) {
	if s.hub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"item": map[string]interface{}{
			"id":            item.ID,
			"code":          item.Code,
			"name":          item.Name,
			"current_stock": item.CurrentStock,
			"min_stock":     item.MinStock,
			"price":         item.Price,
		},
		"message": message,
	}
	msg, _ := json.Marshal(payload)
	s.hub.Publish(msg)
}
