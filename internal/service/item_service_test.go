package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

func TestCreateItem_DuplicateCode(t *testing.T) {
	itemRepo := newMockItemRepo()
	seedItem(itemRepo, 10) // code LIN-001

	svc := NewItemService(itemRepo, nil, nil, nil)

	err := svc.CreateItem(&model.Item{Code: "LIN-001", Name: "Sprei Lain"}, "u1", "budi")
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cerr.Field != "code" {
		t.Errorf("expected conflict on code, got %s", cerr.Field)
	}
}

func TestCreateItem_VisibleInViewBeforeRefresh(t *testing.T) {
	itemRepo := newMockItemRepo()
	view := NewItemView(itemRepo, nil, time.Hour)
	if err := view.RefreshNow(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc := NewItemService(itemRepo, nil, nil, view)

	item := &model.Item{Code: "LIN-010", Name: "Selimut", Unit: "pcs", MinStock: 2}
	if err := svc.CreateItem(item, "u1", "budi"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// No refresh has happened; the optimistic patch alone makes it visible.
	items := view.Items()
	if len(items) != 1 || items[0].Code != "LIN-010" {
		t.Fatalf("expected new item in view, got %v", items)
	}
	if items[0].Status != model.ItemActive {
		t.Errorf("expected status defaulted to active, got %s", items[0].Status)
	}
}

func TestUpdateItem_KeepsBlankFields(t *testing.T) {
	itemRepo := newMockItemRepo()
	item := seedItem(itemRepo, 10)
	item.Location = "Gudang A"

	svc := NewItemService(itemRepo, nil, nil, nil)

	updated, err := svc.UpdateItem(item.ID, &model.Item{
		Name:         "Sprei King Deluxe",
		MinStock:     item.MinStock,
		CurrentStock: item.CurrentStock,
	}, "u1", "budi")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Sprei King Deluxe" {
		t.Errorf("name not updated: %s", updated.Name)
	}
	if updated.Code != "LIN-001" {
		t.Errorf("blank code overwrote existing: %q", updated.Code)
	}
	if updated.Location != "Gudang A" {
		t.Errorf("blank location overwrote existing: %q", updated.Location)
	}
}

func TestUpdateItem_AdminStockEdit(t *testing.T) {
	itemRepo := newMockItemRepo()
	item := seedItem(itemRepo, 10)

	svc := NewItemService(itemRepo, nil, nil, nil)

	updated, err := svc.UpdateItem(item.ID, &model.Item{
		MinStock:     item.MinStock,
		CurrentStock: 25,
	}, "u1", "budi")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CurrentStock != 25 {
		t.Errorf("expected stock 25, got %d", updated.CurrentStock)
	}
	if got := itemRepo.stock(item.ID); got != 25 {
		t.Errorf("repo stock not updated, got %d", got)
	}
}

func TestDeleteItem_RemovedFromView(t *testing.T) {
	itemRepo := newMockItemRepo()
	item := seedItem(itemRepo, 10)

	view := NewItemView(itemRepo, nil, time.Hour)
	if err := view.RefreshNow(t.Context()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc := NewItemService(itemRepo, nil, nil, view)

	if err := svc.DeleteItem(item.ID, "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if items := view.Items(); len(items) != 0 {
		t.Errorf("expected empty view after delete, got %v", items)
	}
}

func TestDeleteItem_NotFound(t *testing.T) {
	svc := NewItemService(newMockItemRepo(), nil, nil, nil)

	err := svc.DeleteItem(uuid.New(), "u1")
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
