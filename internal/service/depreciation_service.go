package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

type DepreciationService interface {
	Create(req *model.Depreciation, userID string) error
	Update(id uuid.UUID, req *model.Depreciation, userID string) (*model.Depreciation, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Depreciation, error)
	GetByID(id uuid.UUID) (*model.Depreciation, error)
}

type depreciationService struct {
	depRepo  repository.DepreciationRepository
	itemRepo repository.ItemRepository
}

func NewDepreciationService(depRepo repository.DepreciationRepository, itemRepo repository.ItemRepository) DepreciationService {
	return &depreciationService{depRepo: depRepo, itemRepo: itemRepo}
}

func (s *depreciationService) Create(req *model.Depreciation, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	if _, err := s.itemRepo.FindByID(req.ItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "item", ID: req.ItemID.String()}
		}
		return &PersistenceError{Op: "item lookup", Err: err}
	}

	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	if req.Status == "" {
		req.Status = model.DepreciationPending
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.depRepo.Create(req); err != nil {
		return &PersistenceError{Op: "depreciation insert", Err: err}
	}
	return nil
}

func (s *depreciationService) Update(id uuid.UUID, req *model.Depreciation, userID string) (*model.Depreciation, error) {
	existing, err := s.depRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "depreciation", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "depreciation lookup", Err: err}
	}

	if req.Quantity > 0 {
		existing.Quantity = req.Quantity
	}
	if req.Reason != "" {
		existing.Reason = req.Reason
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if !req.Date.IsZero() {
		existing.Date = req.Date
	}
	existing.UpdatedBy = userID

	if err := s.depRepo.Update(existing); err != nil {
		return nil, &PersistenceError{Op: "depreciation update", Err: err}
	}
	return existing, nil
}

func (s *depreciationService) Delete(id uuid.UUID) error {
	if _, err := s.depRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "depreciation", ID: id.String()}
		}
		return &PersistenceError{Op: "depreciation lookup", Err: err}
	}
	if err := s.depRepo.Delete(id); err != nil {
		return &PersistenceError{Op: "depreciation delete", Err: err}
	}
	return nil
}

func (s *depreciationService) GetAll() ([]model.Depreciation, error) {
	return s.depRepo.FindAll()
}

func (s *depreciationService) GetByID(id uuid.UUID) (*model.Depreciation, error) {
	dep, err := s.depRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "depreciation", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "depreciation lookup", Err: err}
	}
	return dep, nil
}
