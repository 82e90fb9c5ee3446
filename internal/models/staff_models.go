package models

// StaffMember represents a gym employee.
type StaffMember struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Gender           string  `json:"gender"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phoneNumber"`
	Post             string  `json:"post"`
	EmergencyContact string  `json:"emergencyContact"`
	Relation         string  `json:"relation"`
	Image            string  `json:"image"`
	Salary           float64 `json:"salary"` // nominal monthly rate
	GovID            string  `json:"govId"`
}
