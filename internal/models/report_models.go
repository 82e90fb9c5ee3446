package models

// AttendanceMap is the raw attendance tree for one person kind:
// personId -> dateKey -> true. Absence is never stored; it is the complement
// of this map over the known person set.
type AttendanceMap map[string]map[string]bool

// DailyAttendance is one day's distinct-person visit count.
type DailyAttendance struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeekdayAverage is the rounded mean visit count for one weekday across all
// occurrences of that weekday in a month.
type WeekdayAverage struct {
	Day     string `json:"day"`
	Average int    `json:"average"`
}

// FeesAndSalary is the monthly revenue/salary rollup.
type FeesAndSalary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalSalary  float64 `json:"totalSalary"`
}
