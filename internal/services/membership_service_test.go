package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipFixture(t *testing.T, at time.Time) (MembershipService, repositories.MembershipRepository, repositories.PaymentHistoryRepository) {
	t.Helper()
	db := store.NewMemory()
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentHistoryRepository(db)
	clock := timekey.NewClockAt(func() time.Time { return at })
	return NewMembershipService(membershipRepo, paymentRepo, clock), membershipRepo, paymentRepo
}

func strPtr(s string) *string { return &s }

func TestCreateMembershipOpensFirstVersion(t *testing.T) {
	svc, _, paymentRepo := newMembershipFixture(t, time.Date(2025, 7, 10, 16, 26, 9, 665_000_000, time.UTC))
	ctx := context.Background()

	vm, err := svc.CreateMembership(ctx, MembershipRequest{
		ClientID:      "c1",
		StartDate:     "2025-07-10",
		PaymentAmount: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-10T16:26:09_665", vm.Version)
	assert.Equal(t, "2025-07-10", vm.StartDate)
	assert.Nil(t, vm.EndDate)
	assert.Equal(t, models.MembershipActive, vm.Status)

	payments, err := paymentRepo.ListByClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, vm.Version, payments[0].MembershipVersion)
	assert.Equal(t, 15000.0, payments[0].Amount)
}

func TestCreateMembershipRejectsSecondOpenVersion(t *testing.T) {
	svc, _, _ := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-10", PaymentAmount: 15000})
	require.NoError(t, err)

	_, err = svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-08-01", PaymentAmount: 15000})
	assert.ErrorIs(t, err, ErrMembershipOpen)
}

func TestUpdateMembershipSupersedesOpenVersion(t *testing.T) {
	svc, _, _ := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-10", PaymentAmount: 15000})
	require.NoError(t, err)

	second, err := svc.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-08-10", PaymentAmount: 15000})
	require.NoError(t, err)
	assert.Greater(t, second.Version, first.Version)

	history, err := svc.GetMembershipHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	// predecessor closed the day before the new start and flipped to expired
	closed := history[0]
	assert.Equal(t, first.Version, closed.Version)
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, "2025-08-09", *closed.EndDate)
	assert.Equal(t, models.MembershipExpired, closed.Status)

	// successor is the sole open version
	current, err := svc.GetCurrentMembership(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, second.Version, current.Version)
	assert.Nil(t, current.EndDate)
}

func TestUpdateMembershipWithoutOpenVersion(t *testing.T) {
	svc, _, _ := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))

	_, err := svc.UpdateMembership(context.Background(), MembershipRequest{ClientID: "ghost", StartDate: "2025-07-10", PaymentAmount: 15000})
	assert.ErrorIs(t, err, ErrNoActiveMembership)
}

func TestAtMostOneOpenVersionAcrossRenewals(t *testing.T) {
	svc, repo, _ := newMembershipFixture(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-01-01", PaymentAmount: 10000})
	require.NoError(t, err)
	for _, start := range []string{"2025-02-01", "2025-03-01", "2025-04-01"} {
		_, err := svc.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: start, PaymentAmount: 10000})
		require.NoError(t, err)
	}

	history, err := repo.History(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 4)

	open := 0
	for _, vm := range history {
		if vm.EndDate == nil {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestConcurrentRenewalsKeepSingleOpenVersion(t *testing.T) {
	svc, repo, _ := newMembershipFixture(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-01-01", PaymentAmount: 10000})
	require.NoError(t, err)

	const renewals = 16
	var wg sync.WaitGroup
	for i := 0; i < renewals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-02-01", PaymentAmount: 10000})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := repo.History(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, renewals+1)

	open := 0
	for _, vm := range history {
		if vm.EndDate == nil {
			open++
		}
	}
	assert.Equal(t, 1, open)

	current, err := svc.GetCurrentMembership(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, current.EndDate)
}

func TestPaymentHistoryAppendedOnlyWhenAmountChanges(t *testing.T) {
	svc, _, paymentRepo := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-07-10", PaymentAmount: 15000})
	require.NoError(t, err)

	// same amount: renewal recorded, no new payment entry
	_, err = svc.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-08-10", PaymentAmount: 15000})
	require.NoError(t, err)
	payments, err := paymentRepo.ListByClient(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	// changed amount: entry appended
	renewed, err := svc.UpdateMembership(ctx, MembershipRequest{ClientID: "c1", StartDate: "2025-09-10", PaymentAmount: 18000})
	require.NoError(t, err)
	payments, err = paymentRepo.ListByClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, renewed.Version, payments[1].MembershipVersion)
	assert.Equal(t, 18000.0, payments[1].Amount)
}

func TestMembershipValidation(t *testing.T) {
	svc, _, _ := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []MembershipRequest{
		{ClientID: "", StartDate: "2025-07-10", PaymentAmount: 100},
		{ClientID: "c1", StartDate: "", PaymentAmount: 100},
		{ClientID: "c1", StartDate: "10-07-2025", PaymentAmount: 100},
		{ClientID: "c1", StartDate: "2025-13-40", PaymentAmount: 100},
		{ClientID: "c1", StartDate: "2025-07-10", EndDate: strPtr("bogus"), PaymentAmount: 100},
		{ClientID: "c1", StartDate: "2025-07-10", PaymentAmount: 0},
	}
	for _, req := range cases {
		_, err := svc.CreateMembership(ctx, req)
		assert.ErrorIs(t, err, ErrMembershipValidation, "request %+v", req)
	}
}

func TestGetCurrentMembershipWithFixedEndDateIsStillOpenQueryMiss(t *testing.T) {
	// A version created with an explicit endDate is never "current": current
	// means endDate == null.
	svc, _, _ := newMembershipFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateMembership(ctx, MembershipRequest{
		ClientID:      "c1",
		StartDate:     "2025-07-10",
		EndDate:       strPtr("2025-08-09"),
		PaymentAmount: 15000,
	})
	require.NoError(t, err)

	_, err = svc.GetCurrentMembership(ctx, "c1")
	assert.ErrorIs(t, err, ErrNoActiveMembership)
}
