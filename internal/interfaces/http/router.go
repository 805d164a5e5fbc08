package httpinterface

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparkle-network/sparkled/internal/core/application"
)

// NewRouter returns the REST surface of the coordinator. Mutating routes are
// throttled to rateLimitRPS requests per second.
func NewRouter(svc *application.Service, rateLimitRPS int) *gin.Engine {
	handler := &tradeHandler{svc: svc, startTime: time.Now()}

	router := gin.New()
	router.Use(gin.Recovery(), loggerMiddleware(), corsMiddleware())

	throttled := router.Group("/v1", rateLimitMiddleware(rateLimitRPS))
	throttled.POST("/trade", handler.createTrade)
	throttled.POST("/trade/:id/seller-artifact", handler.submitSellerArtifact)
	throttled.POST("/trade/:id/buyer-participation", handler.submitBuyerParticipation)
	throttled.POST("/trade/:id/settle", handler.settleTrade)

	v1 := router.Group("/v1")
	v1.GET("/trade/:id", handler.getTrade)
	v1.GET("/trades", handler.listTrades)
	v1.GET("/stats", handler.stats)
	v1.GET("/health", handler.health)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
