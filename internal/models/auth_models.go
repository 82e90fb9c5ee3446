package models

// GymAccount is the administrator account for a gym. PasswordHash is a bcrypt
// hash and never leaves the server.
type GymAccount struct {
	ID           string `json:"id"`
	GymName      string `json:"gymName"`
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// PublicGymAccount is GymAccount without credential material.
type PublicGymAccount struct {
	ID      string `json:"id"`
	GymName string `json:"gymName"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// Public strips the password hash for API responses.
func (g GymAccount) Public() PublicGymAccount {
	return PublicGymAccount{
		ID:      g.ID,
		GymName: g.GymName,
		Address: g.Address,
		Contact: g.Contact,
		Email:   g.Email,
	}
}
