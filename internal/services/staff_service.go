package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrStaffValidation = errors.New("staff data validation error")
)

// --- Staff DTOs ---
type CreateStaffRequest struct {
	Name             string  `json:"name" binding:"required"`
	Gender           string  `json:"gender" binding:"required"`
	Email            string  `json:"email" binding:"required"`
	PhoneNumber      string  `json:"phoneNumber" binding:"required"`
	Post             string  `json:"post" binding:"required"`
	EmergencyContact string  `json:"emergencyContact" binding:"required"`
	Relation         string  `json:"relation" binding:"required"`
	Image            string  `json:"image" binding:"required"`
	Salary           float64 `json:"salary" binding:"required"`
	GovID            string  `json:"govId" binding:"required"`
}

type UpdateStaffRequest struct {
	Name             *string  `json:"name"`
	Gender           *string  `json:"gender"`
	Email            *string  `json:"email"`
	PhoneNumber      *string  `json:"phoneNumber"`
	Post             *string  `json:"post"`
	EmergencyContact *string  `json:"emergencyContact"`
	Relation         *string  `json:"relation"`
	Image            *string  `json:"image"`
	Salary           *float64 `json:"salary"`
	GovID            *string  `json:"govId"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*models.StaffMember, error)
	GetStaff(ctx context.Context) ([]models.StaffMember, error)
	GetStaffByID(ctx context.Context, staffID string) (*models.StaffMember, error)
	UpdateStaff(ctx context.Context, staffID string, req UpdateStaffRequest) (*models.StaffMember, error)
	DeleteStaff(ctx context.Context, staffID string) error
	GetAbsentStaffToday(ctx context.Context) ([]models.StaffMember, error)
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo  repositories.StaffRepository
	attendance AttendanceService
	clock      *timekey.Clock
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(staffRepo repositories.StaffRepository, attendance AttendanceService, clock *timekey.Clock) StaffService {
	return &staffService{staffRepo: staffRepo, attendance: attendance, clock: clock}
}

func (s *staffService) CreateStaff(ctx context.Context, req CreateStaffRequest) (*models.StaffMember, error) {
	for field, value := range map[string]string{
		"name": req.Name, "gender": req.Gender, "email": req.Email,
		"phoneNumber": req.PhoneNumber, "post": req.Post,
		"emergencyContact": req.EmergencyContact, "relation": req.Relation,
		"image": req.Image, "govId": req.GovID,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", ErrStaffValidation, field)
		}
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrStaffValidation)
	}
	if math.IsNaN(req.Salary) || math.IsInf(req.Salary, 0) || req.Salary <= 0 {
		return nil, fmt.Errorf("%w: salary must be a positive number", ErrStaffValidation)
	}

	staff := &models.StaffMember{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Gender:           req.Gender,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Post:             req.Post,
		EmergencyContact: req.EmergencyContact,
		Relation:         req.Relation,
		Image:            req.Image,
		Salary:           req.Salary,
		GovID:            req.GovID,
	}
	if err := s.staffRepo.CreateStaff(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaff(ctx context.Context) ([]models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, staffID string) (*models.StaffMember, error) {
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id is required", ErrStaffValidation)
	}
	staff, err := s.staffRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, staffID string, req UpdateStaffRequest) (*models.StaffMember, error) {
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id is required", ErrStaffValidation)
	}
	if _, err := s.staffRepo.GetStaffByID(ctx, staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff member for update: %w", err)
	}

	fields := map[string]any{}
	setIfPresent(fields, "name", req.Name)
	setIfPresent(fields, "gender", req.Gender)
	setIfPresent(fields, "email", req.Email)
	setIfPresent(fields, "phoneNumber", req.PhoneNumber)
	setIfPresent(fields, "post", req.Post)
	setIfPresent(fields, "emergencyContact", req.EmergencyContact)
	setIfPresent(fields, "relation", req.Relation)
	setIfPresent(fields, "image", req.Image)
	setIfPresent(fields, "govId", req.GovID)
	if req.Salary != nil {
		if math.IsNaN(*req.Salary) || math.IsInf(*req.Salary, 0) || *req.Salary <= 0 {
			return nil, fmt.Errorf("%w: salary must be a positive number", ErrStaffValidation)
		}
		fields["salary"] = *req.Salary
	}
	if email, ok := fields["email"].(string); ok && !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrStaffValidation)
	}

	if len(fields) > 0 {
		if err := s.staffRepo.UpdateStaff(ctx, staffID, fields); err != nil {
			return nil, fmt.Errorf("failed to update staff member: %w", err)
		}
	}
	return s.staffRepo.GetStaffByID(ctx, staffID)
}

func (s *staffService) DeleteStaff(ctx context.Context, staffID string) error {
	if staffID == "" {
		return fmt.Errorf("%w: staff id is required", ErrStaffValidation)
	}
	if _, err := s.staffRepo.GetStaffByID(ctx, staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to find staff member for deletion: %w", err)
	}
	if err := s.staffRepo.DeleteStaff(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

// GetAbsentStaffToday returns the staff members with no attendance entry for
// today's date key.
func (s *staffService) GetAbsentStaffToday(ctx context.Context) ([]models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	today := timekey.DateKey(s.clock.Now())
	present, err := s.attendance.PresentOn(ctx, repositories.KindStaff, today)
	if err != nil {
		return nil, err
	}

	absent := []models.StaffMember{}
	for _, member := range staff {
		if !present[member.ID] {
			absent = append(absent, member)
		}
	}
	return absent, nil
}
