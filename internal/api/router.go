package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fabiobedeschi/iiot-userservice/pkg/middleware"
)

// NewRouter creates and configures the Gin router.
func NewRouter(users *UserHandler, bins *WasteBinHandler) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.CorrelationID())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// User routes
	r.GET("/users", users.ListUsers)
	r.GET("/users/:id", users.GetUser)
	r.POST("/users/:id", users.CreateUser)
	r.PUT("/users/:id", users.UpdateUser)
	r.PATCH("/users/:id", users.UpdateUser)
	r.DELETE("/users/:id", users.DeleteUser)

	// Waste bin routes
	r.GET("/waste_bins", bins.ListWasteBins)
	r.GET("/waste_bins/:id", bins.GetWasteBin)
	r.PUT("/waste_bins/:id", bins.UpdateWasteBin)
	r.PATCH("/waste_bins/:id", bins.UpdateWasteBin)

	return r
}
