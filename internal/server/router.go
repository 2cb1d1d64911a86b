package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the JSON API the browser shell consumes.
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallets", handler.ListWallets)
		v1.POST("/wallets/:id/connect", handler.ConnectWallet)
		v1.POST("/wallets/:id/disconnect", handler.DisconnectWallet)
		v1.POST("/wallets/active", handler.SetActive)
		v1.GET("/session", handler.Session)
		v1.GET("/assets/:address", handler.ListAssets)
		v1.POST("/transfers", handler.SendAsset)
	}

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
