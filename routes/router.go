package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/client"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/refmatch/config"
	"github.com/DhavalSuthar-24/refmatch/internal/auth"
	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/payment"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
	"github.com/DhavalSuthar-24/refmatch/internal/seats"
)

// SetupRoutes builds the gin engine and wires every feature's routes.
func SetupRoutes(db *gorm.DB, cfg *config.Config, gateway identity.Gateway, stripeClient *client.API) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "refmatch", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, gateway)
	profile.RegisterProfileRoutes(api, db, gateway)
	seats.RegisterSeatRoutes(api, db, gateway)
	payment.RegisterPaymentRoutes(api, db, gateway, stripeClient, cfg)

	return r
}
