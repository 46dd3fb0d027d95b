package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
)

// RegisterProfileRoutes wires the profile endpoints under /profile.
func RegisterProfileRoutes(router *gin.RouterGroup, db *gorm.DB, gateway identity.Gateway) {
	repo := NewProfileRepository(db)
	controller := NewProfileController(repo)

	profiles := router.Group("/profile")
	profiles.Use(middleware.AuthMiddleware(gateway))
	{
		profiles.GET("", controller.GetProfile)
		profiles.PUT("", controller.UpdateProfile)
	}
}
