package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinanceFixture(t *testing.T, at time.Time) (FinanceService, MembershipService, SalaryService) {
	t.Helper()
	db := store.NewMemory()
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentHistoryRepository(db)
	salaryRepo := repositories.NewSalaryRepository(db)
	clock := timekey.NewClockAt(func() time.Time { return at })

	return NewFinanceService(membershipRepo, salaryRepo),
		NewMembershipService(membershipRepo, paymentRepo, clock),
		NewSalaryService(salaryRepo)
}

func TestGetFeesAndSalary(t *testing.T) {
	finance, memberships, salaries := newFinanceFixture(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := memberships.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-01", PaymentAmount: 15000})
	require.NoError(t, err)
	_, err = memberships.CreateMembership(ctx, MembershipRequest{ClientID: "c2", StartDate: "2025-07-15", PaymentAmount: 20000})
	require.NoError(t, err)
	// starts in June, must not count toward July revenue
	_, err = memberships.CreateMembership(ctx, MembershipRequest{ClientID: "c3", StartDate: "2025-06-20", PaymentAmount: 9000})
	require.NoError(t, err)

	_, err = salaries.AddOrUpdateSalary(ctx, SalaryPaymentRequest{StaffID: "s1", Date: "2025-07", PaidAmount: 120000})
	require.NoError(t, err)
	_, err = salaries.AddOrUpdateSalary(ctx, SalaryPaymentRequest{StaffID: "s2", Date: "2025-07", PaidAmount: 80000})
	require.NoError(t, err)

	report, err := finance.GetFeesAndSalary(ctx, "2025-07")
	require.NoError(t, err)
	assert.Equal(t, 35000.0, report.TotalRevenue)
	assert.Equal(t, 200000.0, report.TotalSalary)
}

func TestGetFeesAndSalarySkipsExpiredVersions(t *testing.T) {
	finance, memberships, _ := newFinanceFixture(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := memberships.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-01", PaymentAmount: 15000})
	require.NoError(t, err)
	// renewal within the same month: the superseded version flips to expired
	_, err = memberships.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-20", PaymentAmount: 18000})
	require.NoError(t, err)

	report, err := finance.GetFeesAndSalary(ctx, "2025-07")
	require.NoError(t, err)
	assert.Equal(t, 18000.0, report.TotalRevenue, "only the active version counts")
}

func TestGetFeesAndSalaryEmptyMonth(t *testing.T) {
	finance, _, _ := newFinanceFixture(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))

	report, err := finance.GetFeesAndSalary(context.Background(), "2031-01")
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0.0, report.TotalSalary)
}

func TestGetYearlyProfitCoversAllTwelveMonths(t *testing.T) {
	finance, memberships, salaries := newFinanceFixture(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := memberships.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-03-01", PaymentAmount: 30000})
	require.NoError(t, err)
	_, err = salaries.AddOrUpdateSalary(ctx, SalaryPaymentRequest{StaffID: "s1", Date: "2025-03", PaidAmount: 10000})
	require.NoError(t, err)
	_, err = salaries.AddOrUpdateSalary(ctx, SalaryPaymentRequest{StaffID: "s1", Date: "2025-04", PaidAmount: 10000})
	require.NoError(t, err)

	profit, err := finance.GetYearlyProfit(ctx, "2025")
	require.NoError(t, err)
	require.Len(t, profit, 12)

	assert.Equal(t, 20000.0, profit["2025-03"])
	assert.Equal(t, -10000.0, profit["2025-04"], "salary with no revenue goes negative")
	assert.Equal(t, 0.0, profit["2025-01"])
	assert.Equal(t, 0.0, profit["2025-12"])
}

func TestFinanceValidation(t *testing.T) {
	finance, _, _ := newFinanceFixture(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := finance.GetFeesAndSalary(ctx, "2025-7")
	assert.ErrorIs(t, err, ErrFinanceValidation)
	_, err = finance.GetYearlyProfit(ctx, "25")
	assert.ErrorIs(t, err, ErrFinanceValidation)
}
