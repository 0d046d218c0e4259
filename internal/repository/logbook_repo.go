package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

type LogBookRepository interface {
	Create(entry *model.LogBookEntry) error
	FindAll() ([]model.LogBookEntry, error)
	FindByMonth(month, year int) ([]model.LogBookEntry, error)
	FindByID(id uuid.UUID) (*model.LogBookEntry, error)
	Update(entry *model.LogBookEntry) error
	Delete(id uuid.UUID) error
}

type logBookRepo struct {
	db *gorm.DB
}

func NewLogBookRepo(db *gorm.DB) LogBookRepository {
	return &logBookRepo{db}
}

func (r *logBookRepo) Create(entry *model.LogBookEntry) error {
	return r.db.Create(entry).Error
}

func (r *logBookRepo) FindAll() ([]model.LogBookEntry, error) {
	var entries []model.LogBookEntry
	err := r.db.Order("date ASC").Find(&entries).Error
	return entries, err
}

func (r *logBookRepo) FindByMonth(month, year int) ([]model.LogBookEntry, error) {
	var entries []model.LogBookEntry
	err := r.db.
		Where("EXTRACT(MONTH FROM date) = ? AND EXTRACT(YEAR FROM date) = ?", month, year).
		Order("date ASC").Find(&entries).Error
	return entries, err
}

func (r *logBookRepo) FindByID(id uuid.UUID) (*model.LogBookEntry, error) {
	var entry model.LogBookEntry
	err := r.db.First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *logBookRepo) Update(entry *model.LogBookEntry) error {
	return r.db.Save(entry).Error
}

func (r *logBookRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.LogBookEntry{}, "id = ?", id).Error
}

type CostDefinitionRepository interface {
	FindAll() ([]model.CostItemDefinition, error)
	UpsertPrice(id int, price int64) error
	SeedDefaults() error
}

type costDefinitionRepo struct {
	db *gorm.DB
}

func NewCostDefinitionRepo(db *gorm.DB) CostDefinitionRepository {
	return &costDefinitionRepo{db}
}

func (r *costDefinitionRepo) FindAll() ([]model.CostItemDefinition, error) {
	var defs []model.CostItemDefinition
	err := r.db.Order("id ASC").Find(&defs).Error
	return defs, err
}

func (r *costDefinitionRepo) UpsertPrice(id int, price int64) error {
	res := r.db.Model(&model.CostItemDefinition{}).Where("id = ?", id).Update("price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SeedDefaults inserts the laundry price list, skipping rows that exist.
func (r *costDefinitionRepo) SeedDefaults() error {
	for _, def := range model.DefaultCostItemDefinitions() {
		var count int64
		if err := r.db.Model(&model.CostItemDefinition{}).Where("id = ?", def.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := r.db.Create(&def).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
