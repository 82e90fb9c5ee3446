// Package timekey converts between calendar dates and the fixed-width,
// zero-padded string keys used as storage paths and aggregation buckets.
// Because the formats are fixed-width, key comparisons and range checks are
// plain lexicographic string operations.
package timekey

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// versionLayout is an ISO instant with millisecond precision; the '.' is
	// replaced with '_' and the 'Z' dropped so the key is path-safe.
	// Example: 2025-07-10T16:26:09_665
	versionLayout = "2006-01-02T15:04:05.000"
)

var (
	// DateKeyPattern matches YYYY-MM-DD keys.
	DateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// MonthKeyPattern matches YYYY-MM keys.
	MonthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	// YearPattern matches four-digit years.
	YearPattern = regexp.MustCompile(`^\d{4}$`)
)

// DateKey formats t's UTC calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// MonthKey formats t's UTC calendar month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into UTC midnight of that day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// ParseMonthKey parses a YYYY-MM key into UTC midnight of the first of the month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// AddDays returns the date key n calendar days after key (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// MonthOf returns the month key containing the given date key.
func MonthOf(dateKey string) string {
	if len(dateKey) < len("2006-01") {
		return dateKey
	}
	return dateKey[:len("2006-01")]
}

// InMonth reports whether dateKey falls inside monthKey. Valid purely as a
// prefix check because both formats are fixed-width and zero-padded.
func InMonth(dateKey, monthKey string) bool {
	return strings.HasPrefix(dateKey, monthKey+"-")
}

// DaysIn returns the number of calendar days in the given month.
func DaysIn(monthKey string) (int, error) {
	first, err := ParseMonthKey(monthKey)
	if err != nil {
		return 0, err
	}
	return first.AddDate(0, 1, -1).Day(), nil
}

// Weekday returns the weekday of a date key, 0=Sunday through 6=Saturday.
func Weekday(dateKey string) (int, error) {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// WeekdayNames indexes weekday display names by Weekday's 0=Sunday convention.
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Clock issues version keys: lexicographically sortable, path-safe instant
// strings. Keys are strictly monotonic per Clock, so two versions issued
// within the same millisecond never collide.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last string
}

// NewClock returns a Clock backed by time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt returns a Clock backed by the given time source. Used in tests
// to pin "today" and version keys.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	return c.now()
}

// VersionKey returns the next version key. If the wall clock has not advanced
// past the previously issued key, the timestamp is bumped by one millisecond.
func (c *Clock) VersionKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC()
	key := formatVersion(t)
	for key <= c.last {
		t = t.Add(time.Millisecond)
		key = formatVersion(t)
	}
	c.last = key
	return key
}

func formatVersion(t time.Time) string {
	return strings.ReplaceAll(t.Format(versionLayout), ".", "_")
}
