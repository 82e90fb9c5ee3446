package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
)

// --- Custom Service Errors for Finance ---
var (
	ErrFinanceValidation = errors.New("finance query validation error")
)

// --- FinanceService Interface ---

// FinanceService derives revenue/salary rollups. Revenue is attributed to the
// month a membership version STARTS in, counting only versions still marked
// active; salary comes from the per-month running totals. The two reads are
// independent snapshots with no isolation between them.
type FinanceService interface {
	GetFeesAndSalary(ctx context.Context, monthKey string) (*models.FeesAndSalary, error)
	GetYearlyProfit(ctx context.Context, year string) (map[string]float64, error)
}

// --- financeService Implementation ---
type financeService struct {
	membershipRepo repositories.MembershipRepository
	salaryRepo     repositories.SalaryRepository
}

// NewFinanceService creates a new instance of FinanceService.
func NewFinanceService(membershipRepo repositories.MembershipRepository, salaryRepo repositories.SalaryRepository) FinanceService {
	return &financeService{membershipRepo: membershipRepo, salaryRepo: salaryRepo}
}

func (s *financeService) GetFeesAndSalary(ctx context.Context, monthKey string) (*models.FeesAndSalary, error) {
	if !timekey.MonthKeyPattern.MatchString(monthKey) {
		return nil, fmt.Errorf("%w: invalid month format, use YYYY-MM", ErrFinanceValidation)
	}

	revenue, err := s.revenueByMonth(ctx)
	if err != nil {
		return nil, err
	}
	salary, err := s.salaryByMonth(ctx)
	if err != nil {
		return nil, err
	}
	return &models.FeesAndSalary{
		TotalRevenue: revenue[monthKey],
		TotalSalary:  salary[monthKey],
	}, nil
}

func (s *financeService) GetYearlyProfit(ctx context.Context, year string) (map[string]float64, error) {
	if !timekey.YearPattern.MatchString(year) {
		return nil, fmt.Errorf("%w: invalid year format", ErrFinanceValidation)
	}

	revenue, err := s.revenueByMonth(ctx)
	if err != nil {
		return nil, err
	}
	salary, err := s.salaryByMonth(ctx)
	if err != nil {
		return nil, err
	}

	profits := make(map[string]float64, 12)
	for month := 1; month <= 12; month++ {
		monthKey := fmt.Sprintf("%s-%02d", year, month)
		profits[monthKey] = revenue[monthKey] - salary[monthKey]
	}
	return profits, nil
}

// revenueByMonth sums paymentAmount over every client's membership versions,
// bucketed by start month, counting only versions still marked active.
func (s *financeService) revenueByMonth(ctx context.Context) (map[string]float64, error) {
	clientIDs, err := s.membershipRepo.ClientIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership clients: %w", err)
	}
	revenue := map[string]float64{}
	for _, clientID := range clientIDs {
		history, err := s.membershipRepo.History(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("failed to read memberships of %s: %w", clientID, err)
		}
		for _, mv := range history {
			if mv.Status != models.MembershipActive {
				continue
			}
			revenue[timekey.MonthOf(mv.StartDate)] += mv.PaymentAmount
		}
	}
	return revenue, nil
}

// salaryByMonth sums the per-staff monthly running totals.
func (s *financeService) salaryByMonth(ctx context.Context) (map[string]float64, error) {
	staffIDs, err := s.salaryRepo.StaffIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	salary := map[string]float64{}
	for _, staffID := range staffIDs {
		months, err := s.salaryRepo.MonthsOf(ctx, staffID)
		if err != nil {
			return nil, fmt.Errorf("failed to read salaries of %s: %w", staffID, err)
		}
		for _, record := range months {
			salary[record.Month] += record.PaidAmount
		}
	}
	return salary, nil
}
