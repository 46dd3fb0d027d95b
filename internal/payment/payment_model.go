package payment

// CheckoutRequest selects the subscription tier to purchase: "coach" for
// coaches; "1-4", "5-9" or "10+" for clubs.
type CheckoutRequest struct {
	Tier string `json:"tier" binding:"required" example:"1-4"`
}

// CheckoutResponse carries the created Stripe checkout session.
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PublicConfigResponse exposes the publishable Stripe key to browser clients.
type PublicConfigResponse struct {
	PublishableKey string `json:"publishable_key"`
}
