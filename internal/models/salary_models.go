package models

// SalaryRecord holds the amount paid to one staff member in one month.
// PaidAmount is a running total: every payment transaction adds to it.
type SalaryRecord struct {
	StaffID    string  `json:"staffId"`
	Month      string  `json:"date"` // month key YYYY-MM; "date" for API compatibility
	PaidAmount float64 `json:"paidAmount"`
}
