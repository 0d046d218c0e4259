package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByCode(code string) (*model.Item, error)
	Update(item *model.Item) error
	Delete(id uuid.UUID, deletedBy string) error
	AdjustStock(id uuid.UUID, delta int, updatedBy string) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Preload("Supplier").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.Preload("Supplier").First(&item, "id = ?", id).Error
	return &item, err
}

func (r *itemRepo) FindByCode(code string) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "code = ?", code).Error
	return &item, err
}

func (r *itemRepo) Update(item *model.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Item{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Item{}, "id = ?", id).Error
}

// AdjustStock applies a signed delta as a single atomic UPDATE so concurrent
// movements on the same item cannot lose writes.
func (r *itemRepo) AdjustStock(id uuid.UUID, delta int, updatedBy string) error {
	res := r.db.Model(&model.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", delta),
			"updated_by":    updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
