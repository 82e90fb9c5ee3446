package models

// Client represents a gym member's profile.
type Client struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gender           string `json:"gender"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	Image            string `json:"image"` // base64 or URL, stored opaque
	Relation         string `json:"relation"`
}

// EnrichedClient is the client read model: the profile plus the derived
// membership expiry date. A nil expiry means either no membership on file or
// an open-ended active one; handlers expose it as JSON null either way.
type EnrichedClient struct {
	Client
	MembershipExpiry *string `json:"membershipExpiry"`
}
