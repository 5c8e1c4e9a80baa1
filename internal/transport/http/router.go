package handlers

import (
	"time"

	"langconnect/internal/infrastructure/security"
	"langconnect/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, limiter *middleware.RateLimiter, tokens *security.TokenManager) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-User-Id"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.Use(middleware.Auth(tokens))

	// Единый endpoint с ?action= — формат прежнего клиента
	r.GET("/", h.DispatchGET)
	r.POST("/", h.DispatchPOST)
	r.PUT("/", h.DispatchPUT)

	r.POST("/translate", limiter.Limit("translate", 30, time.Minute), h.Translate)

	return r
}
