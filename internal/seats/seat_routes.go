package seats

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

// RegisterSeatRoutes wires the seat endpoints under /seats.
func RegisterSeatRoutes(router *gin.RouterGroup, db *gorm.DB, gateway identity.Gateway) {
	allocator := NewAllocator(NewSeatRepository(db), profile.NewProfileRepository(db), gateway)
	controller := NewSeatController(allocator)

	seatGroup := router.Group("/seats")
	seatGroup.Use(middleware.AuthMiddleware(gateway))
	{
		seatGroup.GET("", controller.ListSeats)
		seatGroup.POST("/grant", controller.GrantSeat)
	}
}
