package main

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v79/client"

	"github.com/DhavalSuthar-24/refmatch/config"
	_ "github.com/DhavalSuthar-24/refmatch/docs"
	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
	"github.com/DhavalSuthar-24/refmatch/internal/seats"
	"github.com/DhavalSuthar-24/refmatch/routes"
)

// @title RefMatch REST API
// @version 1.0
// @description Referee marketplace backend: role-based profiles, subscriptions and club seat allocation.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&profile.UserProfile{}, &seats.AuthorizedSeat{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	ctx := context.Background()

	var gateway identity.Gateway
	switch cfg.Identity.Provider {
	case "local":
		gateway = identity.NewLocalGateway(cfg.Identity.LocalSecret, profile.NewProfileRepository(db))
		log.Println("Using local identity gateway")
	default:
		gateway, err = identity.NewFirebaseGateway(ctx, cfg.Identity.ProjectID, cfg.Identity.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize identity gateway: %v", err)
		}
	}

	stripeClient := &client.API{}
	stripeClient.Init(cfg.Stripe.SecretKey, nil)

	r := routes.SetupRoutes(db, cfg, gateway, stripeClient)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
