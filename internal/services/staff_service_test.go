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

func newStaffFixture(t *testing.T, at time.Time) (StaffService, repositories.AttendanceRepository) {
	t.Helper()
	db := store.NewMemory()
	staffRepo := repositories.NewStaffRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	clock := timekey.NewClockAt(func() time.Time { return at })
	return NewStaffService(staffRepo, NewAttendanceService(attendanceRepo, clock), clock), attendanceRepo
}

func validStaffRequest(name, email string) CreateStaffRequest {
	return CreateStaffRequest{
		Name:             name,
		Gender:           "male",
		Email:            email,
		PhoneNumber:      "+77010000000",
		Post:             "Trainer",
		EmergencyContact: "+77020000000",
		Relation:         "brother",
		Image:            "photo.jpg",
		Salary:           120000,
		GovID:            "990101300123",
	}
}

func TestCreateStaffAssignsID(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))

	staff, err := svc.CreateStaff(context.Background(), validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)
	assert.NotEmpty(t, staff.ID)
	assert.Equal(t, "Trainer", staff.Post)
	assert.Equal(t, 120000.0, staff.Salary)
}

func TestCreateStaffValidation(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	req := validStaffRequest("Dias", "dias@mail.kz")
	req.GovID = ""
	_, err := svc.CreateStaff(ctx, req)
	assert.ErrorIs(t, err, ErrStaffValidation)

	req = validStaffRequest("Dias", "dias@mail.kz")
	req.Salary = -1
	_, err = svc.CreateStaff(ctx, req)
	assert.ErrorIs(t, err, ErrStaffValidation)

	req = validStaffRequest("Dias", "broken-email")
	_, err = svc.CreateStaff(ctx, req)
	assert.ErrorIs(t, err, ErrStaffValidation)
}

func TestGetStaffByID(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)

	got, err := svc.GetStaffByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.GetStaffByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestUpdateStaffAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)

	newSalary := 150000.0
	updated, err := svc.UpdateStaff(ctx, created.ID, UpdateStaffRequest{
		Post:   strPtr("Manager"),
		Salary: &newSalary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Manager", updated.Post)
	assert.Equal(t, 150000.0, updated.Salary)
	assert.Equal(t, "Dias", updated.Name, "unspecified fields untouched")
}

func TestUpdateStaffRejectsBadSalary(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)

	bad := -100.0
	_, err = svc.UpdateStaff(ctx, created.ID, UpdateStaffRequest{Salary: &bad})
	assert.ErrorIs(t, err, ErrStaffValidation)
}

func TestDeleteStaff(t *testing.T) {
	svc, _ := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStaff(ctx, created.ID))
	_, err = svc.GetStaffByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	assert.ErrorIs(t, svc.DeleteStaff(ctx, created.ID), ErrStaffNotFound)
}

func TestGetAbsentStaffToday(t *testing.T) {
	svc, attendance := newStaffFixture(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	present, err := svc.CreateStaff(ctx, validStaffRequest("Dias", "dias@mail.kz"))
	require.NoError(t, err)
	absent, err := svc.CreateStaff(ctx, validStaffRequest("Ermek", "ermek@mail.kz"))
	require.NoError(t, err)

	require.NoError(t, attendance.Mark(ctx, repositories.KindStaff, present.ID, "2025-07-10"))

	got, err := svc.GetAbsentStaffToday(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, absent.ID, got[0].ID)
}
