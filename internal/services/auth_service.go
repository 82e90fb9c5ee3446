package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/codes"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGymNotFound        = errors.New("gym account not found")
	ErrAuthValidation     = errors.New("auth data validation error")
)

const resetCodeTTL = 10 * time.Minute

// --- Auth DTOs ---
type RegisterRequest struct {
	GymName  string `json:"gymName" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string                  `json:"accessToken"`
	RefreshToken string                  `json:"refreshToken"`
	Gym          models.PublicGymAccount `json:"gym"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.PublicGymAccount, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, gymID string) (*models.PublicGymAccount, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

// --- authService Implementation ---
type authService struct {
	gymRepo   repositories.GymRepository
	codeStore codes.Store
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(gymRepo repositories.GymRepository, codeStore codes.Store) AuthService {
	return &authService{gymRepo: gymRepo, codeStore: codeStore}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.PublicGymAccount, error) {
	for field, value := range map[string]string{
		"gymName": req.GymName, "address": req.Address,
		"contact": req.Contact, "email": req.Email,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", ErrAuthValidation, field)
		}
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrAuthValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrAuthValidation)
	}

	if _, err := s.gymRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	gym := &models.GymAccount{
		ID:           uuid.NewString(),
		GymName:      req.GymName,
		Address:      req.Address,
		Contact:      req.Contact,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.gymRepo.Create(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to create gym account: %w", err)
	}
	public := gym.Public()
	return &public, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	gym, err := s.gymRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch gym account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(gym.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(gym.ID, gym.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(gym.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Gym:          gym.Public(),
	}, nil
}

func (s *authService) Me(ctx context.Context, gymID string) (*models.PublicGymAccount, error) {
	gym, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, fmt.Errorf("failed to fetch gym account: %w", err)
	}
	public := gym.Public()
	return &public, nil
}

// ForgotPassword issues a one-time reset code for the account. The response
// is the same whether or not the email exists, so the endpoint cannot be used
// to probe for registered addresses.
func (s *authService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	gym, err := s.gymRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch gym account: %w", err)
	}

	code, err := codes.Generate(6)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	if err := s.codeStore.Put(ctx, gym.Email, code, resetCodeTTL); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	// No mail transport is configured yet, so the code is surfaced through
	// the server log for the operator to relay.
	utils.LogInfo("password reset code issued", map[string]interface{}{
		"email": gym.Email,
		"code":  code,
	})
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrAuthValidation)
	}
	gym, err := s.gymRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to fetch gym account: %w", err)
	}
	if err := s.codeStore.Consume(ctx, gym.Email, req.Code); err != nil {
		if errors.Is(err, codes.ErrCodeInvalid) {
			return codes.ErrCodeInvalid
		}
		return fmt.Errorf("failed to verify reset code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.gymRepo.Update(ctx, gym.ID, map[string]any{"passwordHash": string(hash)}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
