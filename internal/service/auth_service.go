package service

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/jwt"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*model.UserResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	hub      Publisher
}

func NewAuthService(userRepo repository.UserRepository, hub Publisher) AuthService {
	return &authService{userRepo: userRepo, hub: hub}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// Login juga bisa pakai email
		user, err = s.userRepo.FindByEmail(username)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates older tokens.
	tokenVersion := uuid.NewString()
	if err := s.userRepo.UpdateTokenVersion(user.ID, tokenVersion); err != nil {
		return nil, &PersistenceError{Op: "token version update", Err: err}
	}
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, &PersistenceError{Op: "last login update", Err: err}
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.FullName, string(user.Role), tokenVersion)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		payload := map[string]interface{}{
			"type": "user_login",
			"user": map[string]interface{}{
				"id":       user.ID,
				"username": user.Username,
				"name":     user.FullName,
			},
		}
		msg, _ := json.Marshal(payload)
		s.hub.Publish(msg)
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Field: "new_password", Reason: "must be at least 6 characters"}
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "user", ID: username}
		}
		return &PersistenceError{Op: "user lookup", Err: err}
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return &PersistenceError{Op: "password update", Err: err}
	}
	return nil
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, &NotFoundError{Resource: "user", ID: claims.UserID.String()}
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(userID)
}
