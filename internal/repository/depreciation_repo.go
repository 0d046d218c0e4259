package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
)

type DepreciationRepository interface {
	Create(dep *model.Depreciation) error
	FindAll() ([]model.Depreciation, error)
	FindByID(id uuid.UUID) (*model.Depreciation, error)
	Update(dep *model.Depreciation) error
	Delete(id uuid.UUID) error
}

type depreciationRepo struct {
	db *gorm.DB
}

func NewDepreciationRepo(db *gorm.DB) DepreciationRepository {
	return &depreciationRepo{db}
}

func (r *depreciationRepo) Create(dep *model.Depreciation) error {
	return r.db.Create(dep).Error
}

func (r *depreciationRepo) FindAll() ([]model.Depreciation, error) {
	var deps []model.Depreciation
	err := r.db.Preload("Item").Preload("User").Order("date DESC").Find(&deps).Error
	return deps, err
}

func (r *depreciationRepo) FindByID(id uuid.UUID) (*model.Depreciation, error) {
	var dep model.Depreciation
	err := r.db.Preload("Item").Preload("User").First(&dep, "id = ?", id).Error
	return &dep, err
}

func (r *depreciationRepo) Update(dep *model.Depreciation) error {
	return r.db.Save(dep).Error
}

func (r *depreciationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Depreciation{}, "id = ?", id).Error
}
