package models

// Membership statuses. A version is active while it is the client's open
// period and flips to expired exactly once, when a newer version supersedes it.
const (
	MembershipActive  = "active"
	MembershipExpired = "expired"
)

// MembershipVersion is one contiguous membership period for one client.
// Identified by (clientId, version key); append-only per client. Once
// written, only EndDate and Status ever change, and only when the version is
// closed by a successor.
type MembershipVersion struct {
	ClientID      string  `json:"clientId"`
	StartDate     string  `json:"startDate"`         // date key YYYY-MM-DD
	EndDate       *string `json:"endDate"`           // nil = open ("current") version
	PaymentAmount float64 `json:"paymentAmount"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// VersionedMembership pairs a membership version with its version key.
type VersionedMembership struct {
	Version string `json:"version"`
	MembershipVersion
}

// PaymentHistoryEntry is the immutable audit record appended when a
// membership version is created or its price changes. It is a write-only side
// channel: nothing in the aggregation engine reads it back.
type PaymentHistoryEntry struct {
	MembershipVersion string  `json:"membershipVersion"`
	Amount            float64 `json:"amount"`
	PaymentDate       string  `json:"paymentDate"`
	Status            string  `json:"status"` // always "paid"
}
