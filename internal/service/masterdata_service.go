package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

// MasterDataService covers the simple master records (categories, suppliers).
// No cascading deletes: items keep dangling references by design.
type MasterDataService interface {
	CreateCategory(req *model.Category, userID string) error
	UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetCategories() ([]model.Category, error)

	CreateSupplier(req *model.Supplier, userID string) error
	UpdateSupplier(id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetSuppliers() ([]model.Supplier, error)
}

type masterDataService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewMasterDataService(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) MasterDataService {
	return &masterDataService{categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

func (s *masterDataService) CreateCategory(req *model.Category, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if existing, err := s.categoryRepo.FindByCode(req.Code); err == nil && existing.ID != uuid.Nil {
		return &ConflictError{Field: "code", Value: req.Code}
	}
	if req.Status == "" {
		req.Status = model.MasterActive
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.categoryRepo.Create(req); err != nil {
		return &PersistenceError{Op: "category insert", Err: err}
	}
	return nil
}

func (s *masterDataService) UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "category", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "category lookup", Err: err}
	}

	if req.Code != "" && req.Code != existing.Code {
		if dup, err := s.categoryRepo.FindByCode(req.Code); err == nil && dup.ID != id {
			return nil, &ConflictError{Field: "code", Value: req.Code}
		}
		existing.Code = req.Code
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.UpdatedBy = userID

	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, &PersistenceError{Op: "category update", Err: err}
	}
	return existing, nil
}

func (s *masterDataService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "category", ID: id.String()}
		}
		return &PersistenceError{Op: "category lookup", Err: err}
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return &PersistenceError{Op: "category delete", Err: err}
	}
	return nil
}

func (s *masterDataService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *masterDataService) CreateSupplier(req *model.Supplier, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if existing, err := s.supplierRepo.FindByCode(req.Code); err == nil && existing.ID != uuid.Nil {
		return &ConflictError{Field: "code", Value: req.Code}
	}
	if req.Status == "" {
		req.Status = model.MasterActive
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.supplierRepo.Create(req); err != nil {
		return &PersistenceError{Op: "supplier insert", Err: err}
	}
	return nil
}

func (s *masterDataService) UpdateSupplier(id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "supplier", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "supplier lookup", Err: err}
	}

	if req.Code != "" && req.Code != existing.Code {
		if dup, err := s.supplierRepo.FindByCode(req.Code); err == nil && dup.ID != id {
			return nil, &ConflictError{Field: "code", Value: req.Code}
		}
		existing.Code = req.Code
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.ContactName != "" {
		existing.ContactName = req.ContactName
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.UpdatedBy = userID

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, &PersistenceError{Op: "supplier update", Err: err}
	}
	return existing, nil
}

func (s *masterDataService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "supplier", ID: id.String()}
		}
		return &PersistenceError{Op: "supplier lookup", Err: err}
	}
	if err := s.supplierRepo.Delete(id); err != nil {
		return &PersistenceError{Op: "supplier delete", Err: err}
	}
	return nil
}

func (s *masterDataService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}
