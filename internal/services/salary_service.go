package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
)

// --- Custom Service Errors for Salary ---
var (
	ErrSalaryValidation = errors.New("salary data validation error")
)

// --- Salary DTOs ---
type SalaryPaymentRequest struct {
	StaffID    string  `json:"staffId" binding:"required"`
	Date       string  `json:"date" binding:"required"` // month key YYYY-MM
	PaidAmount float64 `json:"paidAmount" binding:"required"`
}

// --- SalaryService Interface ---

// SalaryService tracks salary payments as running monthly totals per staff
// member. Paying twice in a month adds up rather than overwriting.
type SalaryService interface {
	AddOrUpdateSalary(ctx context.Context, req SalaryPaymentRequest) (*models.SalaryRecord, error)
	GetSalary(ctx context.Context, staffID, year, month string) (*models.SalaryRecord, error)
	GetAllSalaries(ctx context.Context) ([]models.SalaryRecord, error)
}

// --- salaryService Implementation ---
type salaryService struct {
	salaryRepo repositories.SalaryRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSalaryService creates a new instance of SalaryService.
func NewSalaryService(repo repositories.SalaryRepository) SalaryService {
	return &salaryService{
		salaryRepo: repo,
		locks:      map[string]*sync.Mutex{},
	}
}

// recordLock returns the mutex guarding one staff member's monthly record.
// Payments for the same (staff, month) pair serialize on it so that the
// read-add-write below cannot lose an increment.
func (s *salaryService) recordLock(staffID, monthKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := staffID + "/" + monthKey
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *salaryService) AddOrUpdateSalary(ctx context.Context, req SalaryPaymentRequest) (*models.SalaryRecord, error) {
	if req.StaffID == "" || req.Date == "" {
		return nil, fmt.Errorf("%w: staffId and date are required", ErrSalaryValidation)
	}
	if !timekey.MonthKeyPattern.MatchString(req.Date) {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM", ErrSalaryValidation)
	}
	if math.IsNaN(req.PaidAmount) || math.IsInf(req.PaidAmount, 0) || req.PaidAmount == 0 {
		return nil, fmt.Errorf("%w: paidAmount must be a finite, non-zero number", ErrSalaryValidation)
	}

	lock := s.recordLock(req.StaffID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	current := 0.0
	existing, err := s.salaryRepo.Get(ctx, req.StaffID, req.Date)
	if err == nil {
		current = existing.PaidAmount
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to read salary record: %w", err)
	}

	record := &models.SalaryRecord{
		StaffID:    req.StaffID,
		Month:      req.Date,
		PaidAmount: current + req.PaidAmount,
	}
	if err := s.salaryRepo.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to write salary record: %w", err)
	}
	return record, nil
}

func (s *salaryService) GetSalary(ctx context.Context, staffID, year, month string) (*models.SalaryRecord, error) {
	if staffID == "" || year == "" || month == "" {
		return nil, fmt.Errorf("%w: staffId, year and month are required", ErrSalaryValidation)
	}
	if !timekey.YearPattern.MatchString(year) {
		return nil, fmt.Errorf("%w: invalid year format", ErrSalaryValidation)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrSalaryValidation)
	}
	monthKey := fmt.Sprintf("%s-%02d", year, m)

	record, err := s.salaryRepo.Get(ctx, staffID, monthKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// No record means nothing paid yet, not an error.
			return &models.SalaryRecord{StaffID: staffID, Month: monthKey, PaidAmount: 0}, nil
		}
		return nil, fmt.Errorf("failed to read salary record: %w", err)
	}
	return record, nil
}

func (s *salaryService) GetAllSalaries(ctx context.Context) ([]models.SalaryRecord, error) {
	staffIDs, err := s.salaryRepo.StaffIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	records := []models.SalaryRecord{}
	for _, staffID := range staffIDs {
		months, err := s.salaryRepo.MonthsOf(ctx, staffID)
		if err != nil {
			return nil, fmt.Errorf("failed to read salaries of %s: %w", staffID, err)
		}
		records = append(records, months...)
	}
	return records, nil
}
