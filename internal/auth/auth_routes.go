package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

// RegisterAuthRoutes wires the public registration endpoint.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, gateway identity.Gateway) {
	profiles := profile.NewProfileRepository(db)
	controller := NewAuthController(profiles, gateway)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", controller.Register)
	}
}
