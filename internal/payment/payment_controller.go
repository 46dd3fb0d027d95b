package payment

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
	"github.com/DhavalSuthar-24/refmatch/pkg/responses"
	"github.com/DhavalSuthar-24/refmatch/pkg/validator"
)

// PaymentController handles checkout creation and the Stripe webhook.
type PaymentController struct {
	stripe         *client.API
	service        *Service
	profiles       profile.ProfileRepository
	prices         PriceTable
	publishableKey string
	webhookSecret  string
	frontendURL    string
}

func NewPaymentController(
	stripeClient *client.API,
	service *Service,
	profiles profile.ProfileRepository,
	prices PriceTable,
	publishableKey, webhookSecret, frontendURL string,
) *PaymentController {
	return &PaymentController{
		stripe:         stripeClient,
		service:        service,
		profiles:       profiles,
		prices:         prices,
		publishableKey: publishableKey,
		webhookSecret:  webhookSecret,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
	}
}

// GetConfig godoc
// @Summary Get public payment configuration
// @Description Returns the publishable Stripe key for browser checkout
// @Tags payments
// @Produce json
// @Success 200 {object} PublicConfigResponse "Publishable key"
// @Failure 500 {object} responses.ErrorResponse "Payments not configured"
// @Router /payments/config [get]
func (pc *PaymentController) GetConfig(c *gin.Context) {
	if pc.publishableKey == "" {
		responses.InternalServerError(c, "Payments are not configured")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", PublicConfigResponse{PublishableKey: pc.publishableKey})
}

// CreateCheckout godoc
// @Summary Start a subscription checkout
// @Description Creates a Stripe checkout session for the tier matching the caller's role
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Tier selection"
// @Success 200 {object} CheckoutResponse "Checkout session"
// @Failure 400 {object} responses.ErrorResponse "Invalid tier for role"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 502 {object} responses.ErrorResponse "Payment provider unavailable"
// @Router /payments/checkout [post]
// @Security Bearer
func (pc *PaymentController) CreateCheckout(c *gin.Context) {
	subject, err := middleware.GetSubjectFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	p, err := pc.profiles.GetProfileBySubject(subject)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			responses.Unauthorized(c, "No profile for this account")
			return
		}
		log.Printf("checkout: profile load failed subject=%s err=%v", subject, err)
		responses.InternalServerError(c, "")
		return
	}

	priceID, ok := pc.prices.PriceForTier(p.Role, req.Tier)
	if !ok {
		responses.BadRequest(c, "Invalid tier for your role")
		return
	}

	email := middleware.GetEmailFromContext(c)
	if email == "" {
		email = p.Email
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:      stripe.String(email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(pc.frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(pc.frontendURL + "/payment-cancel"),
		Metadata: map[string]string{
			"uid":      subject,
			"role":     string(p.Role),
			"price_id": priceID,
		},
	}

	sess, err := pc.stripe.CheckoutSessions.New(params)
	if err != nil {
		log.Printf("checkout: session create failed subject=%s err=%v", subject, err)
		responses.BadGateway(c, "Failed to create checkout session")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Checkout session created", CheckoutResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	})
}

// Webhook godoc
// @Summary Stripe webhook
// @Description Receives signed Stripe events; invalid signatures are rejected, every other outcome is acknowledged
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Acknowledged"
// @Failure 400 {object} map[string]string "Signature verification failed"
// @Router /payments/webhook [post]
func (pc *PaymentController) Webhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Printf("webhook: body read failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		c.GetHeader("Stripe-Signature"),
		pc.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	// Internal failures past this point are logged, never surfaced: a non-200
	// would put Stripe's retry loop against a possibly persistent error.
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("webhook: session unmarshal failed: %v", err)
			break
		}

		email := sess.CustomerEmail
		if email == "" && sess.CustomerDetails != nil {
			email = sess.CustomerDetails.Email
		}
		priceID := sess.Metadata["price_id"]

		if err := pc.service.HandlePaymentCompleted(c.Request.Context(), email, priceID); err != nil {
			log.Printf("webhook: payment completion failed email=%s err=%v", email, err)
		}
	default:
		// Other event types are intentionally ignored.
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
