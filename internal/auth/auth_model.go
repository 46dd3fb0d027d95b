package auth

// RegisterRequest is the payload for POST /auth/register. The id_token is an
// identity-provider bearer token for the account being registered.
type RegisterRequest struct {
	IDToken string `json:"id_token" binding:"required" example:"eyJhbGciOiJSUzI1NiIs..."`
	Role    string `json:"role" binding:"required" example:"referee"`
	Name    string `json:"name,omitempty" example:"Jane Smith"`
	Address string `json:"address,omitempty" example:"12 High Street"`
}

// RegisterResponse reports the initial state derived from the chosen role.
type RegisterResponse struct {
	SubjectID    string `json:"subject_id"`
	Role         string `json:"role"`
	AccessStatus string `json:"access_status"`
	MaxSeats     *int   `json:"max_seats,omitempty"`
}
