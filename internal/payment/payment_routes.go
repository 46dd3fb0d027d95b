package payment

import (
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/client"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/refmatch/config"
	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

// RegisterPaymentRoutes wires the payment endpoints under /payments. The
// webhook stays outside the auth middleware; Stripe authenticates with its
// signature header instead.
func RegisterPaymentRoutes(router *gin.RouterGroup, db *gorm.DB, gateway identity.Gateway, stripeClient *client.API, cfg *config.Config) {
	prices := PriceTable{
		Coach:      cfg.Stripe.PriceIDCoach,
		Club1To4:   cfg.Stripe.PriceID1To4,
		Club5To9:   cfg.Stripe.PriceID5To9,
		Club10Plus: cfg.Stripe.PriceID10Plus,
	}

	profiles := profile.NewProfileRepository(db)
	service := NewService(profiles, gateway, prices)
	controller := NewPaymentController(
		stripeClient,
		service,
		profiles,
		prices,
		cfg.Stripe.PublishableKey,
		cfg.Stripe.WebhookSecret,
		cfg.App.FrontendURL,
	)

	payments := router.Group("/payments")
	{
		payments.GET("/config", controller.GetConfig)
		payments.POST("/webhook", controller.Webhook)

		authed := payments.Group("")
		authed.Use(middleware.AuthMiddleware(gateway))
		{
			authed.POST("/checkout", controller.CreateCheckout)
		}
	}
}
