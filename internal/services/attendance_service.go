package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrAttendanceValidation = errors.New("attendance data validation error")
)

const dailyWindowDays = 7

// --- AttendanceService Interface ---

// AttendanceService records daily presence flags and derives the reporting
// views over them. Presence is only ever set; absence is computed as the
// complement over the known person set.
type AttendanceService interface {
	// MarkAttendance flags the person present today. Idempotent: marking an
	// already-present person changes nothing.
	MarkAttendance(ctx context.Context, kind repositories.PersonKind, personID string) error

	// PresentOn returns the set of person ids with a truthy entry for the
	// given date key.
	PresentOn(ctx context.Context, kind repositories.PersonKind, dateKey string) (map[string]bool, error)

	// GetDailyCounts returns distinct-person visit counts for 7 consecutive
	// days starting at startDate, zero-filled for days with no data.
	GetDailyCounts(ctx context.Context, kind repositories.PersonKind, startDate string) ([]models.DailyAttendance, error)

	// GetVisitFrequency returns, for each weekday of the given month, the
	// visit total divided by that weekday's calendar occurrences, rounded to
	// the nearest integer. Indexed 0=Sunday through 6=Saturday.
	GetVisitFrequency(ctx context.Context, kind repositories.PersonKind, monthKey string) ([]models.WeekdayAverage, error)

	// GetAllAttendance dumps the raw attendance tree for a person kind.
	GetAllAttendance(ctx context.Context, kind repositories.PersonKind) (models.AttendanceMap, error)

	// Today returns the current date key; exposed so callers share the
	// service's notion of "today".
	Today() string
}

// --- attendanceService Implementation ---
type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	clock          *timekey.Clock
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(repo repositories.AttendanceRepository, clock *timekey.Clock) AttendanceService {
	return &attendanceService{attendanceRepo: repo, clock: clock}
}

func (s *attendanceService) Today() string {
	return timekey.DateKey(s.clock.Now())
}

func (s *attendanceService) MarkAttendance(ctx context.Context, kind repositories.PersonKind, personID string) error {
	if personID == "" {
		return fmt.Errorf("%w: personId is required", ErrAttendanceValidation)
	}
	if err := s.attendanceRepo.Mark(ctx, kind, personID, s.Today()); err != nil {
		return fmt.Errorf("failed to mark attendance: %w", err)
	}
	return nil
}

func (s *attendanceService) PresentOn(ctx context.Context, kind repositories.PersonKind, dateKey string) (map[string]bool, error) {
	all, err := s.attendanceRepo.All(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}
	present := map[string]bool{}
	for personID, days := range all {
		if days[dateKey] {
			present[personID] = true
		}
	}
	return present, nil
}

func (s *attendanceService) GetDailyCounts(ctx context.Context, kind repositories.PersonKind, startDate string) ([]models.DailyAttendance, error) {
	if !timekey.DateKeyPattern.MatchString(startDate) {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrAttendanceValidation)
	}
	if _, err := timekey.ParseDateKey(startDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAttendanceValidation, err)
	}

	counts := make([]models.DailyAttendance, 0, dailyWindowDays)
	index := map[string]int{}
	day := startDate
	for i := 0; i < dailyWindowDays; i++ {
		index[day] = i
		counts = append(counts, models.DailyAttendance{Date: day, Count: 0})
		next, err := timekey.AddDays(day, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAttendanceValidation, err)
		}
		day = next
	}

	all, err := s.attendanceRepo.All(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}
	for _, days := range all {
		for date, present := range days {
			if !present {
				continue
			}
			if i, ok := index[date]; ok {
				counts[i].Count++
			}
		}
	}
	return counts, nil
}

func (s *attendanceService) GetVisitFrequency(ctx context.Context, kind repositories.PersonKind, monthKey string) ([]models.WeekdayAverage, error) {
	if !timekey.MonthKeyPattern.MatchString(monthKey) {
		return nil, fmt.Errorf("%w: invalid month format, use YYYY-MM", ErrAttendanceValidation)
	}
	daysInMonth, err := timekey.DaysIn(monthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAttendanceValidation, err)
	}

	var occurrences [7]int
	for day := 1; day <= daysInMonth; day++ {
		dateKey := fmt.Sprintf("%s-%02d", monthKey, day)
		wd, err := timekey.Weekday(dateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAttendanceValidation, err)
		}
		occurrences[wd]++
	}

	all, err := s.attendanceRepo.All(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}

	var visits [7]int
	for _, days := range all {
		for date, present := range days {
			if !present || !timekey.InMonth(date, monthKey) {
				continue
			}
			wd, err := timekey.Weekday(date)
			if err != nil {
				continue // malformed key in storage, skip it
			}
			visits[wd]++
		}
	}

	averages := make([]models.WeekdayAverage, 7)
	for wd := 0; wd < 7; wd++ {
		avg := 0
		if occurrences[wd] > 0 {
			avg = int(math.Round(float64(visits[wd]) / float64(occurrences[wd])))
		}
		averages[wd] = models.WeekdayAverage{Day: timekey.WeekdayNames[wd], Average: avg}
	}
	return averages, nil
}

func (s *attendanceService) GetAllAttendance(ctx context.Context, kind repositories.PersonKind) (models.AttendanceMap, error) {
	all, err := s.attendanceRepo.All(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}
	return all, nil
}
