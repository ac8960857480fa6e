package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Price endpoints
	router.GET("/", handler.GetAllPrices)
	router.GET("/:chainId", handler.GetChainPrices)
}
