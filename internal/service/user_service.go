package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/validator"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin manager staff"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateUserRequest struct {
	Email     string  `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName  string  `json:"full_name"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin manager staff"`
	AvatarURL string  `json:"avatar_url"`
	IsActive  *bool   `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	// 2. Unique username / email
	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, &ConflictError{Field: "username", Value: req.Username}
	}
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, &ConflictError{Field: "email", Value: req.Email}
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      model.UserRole(req.Role),
		AvatarURL: req.AvatarURL,
		IsActive:  true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, &PersistenceError{Op: "user insert", Err: err}
	}

	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", ID: userID.String()}
		}
		return nil, &PersistenceError{Op: "user lookup", Err: err}
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, &ConflictError{Field: "email", Value: req.Email}
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = model.UserRole(req.Role)
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}
	user.UpdatedBy = updaterID

	if err := s.userRepo.Update(user); err != nil {
		return nil, &PersistenceError{Op: "user update", Err: err}
	}

	return user, nil
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "user", ID: userID.String()}
		}
		return &PersistenceError{Op: "user lookup", Err: err}
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return &PersistenceError{Op: "user delete", Err: err}
	}
	return nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, &PersistenceError{Op: "user list", Err: err}
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "user lookup", Err: err}
	}
	resp := user.ToResponse()
	return &resp, nil
}
