package server

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all API routes and the static fallback.
func NewRouter(h *Handler, staticDir string) *gin.Engine {
	router := gin.Default()

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/stocks", h.ListStocks)
		api.POST("/stocks", h.CreateStock)
		api.PUT("/stocks/:symbol", h.UpdateStock)
		api.DELETE("/stocks/:symbol", h.DeleteStock)
		api.GET("/search/:symbol", h.SearchStock)
	}

	// Anything unmatched falls through to the frontend bundle
	router.NoRoute(staticFallback(staticDir))

	return router
}
