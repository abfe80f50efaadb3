package apihandlers

import (
	"net/http"
	"time"

	"pitstop/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the HTTP engine. CORS headers apply to /chat only and are
// sent for the listed origins; an empty list sends none.
func NewRouter(h *APIHandler, origins []string, base *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), logger.Middleware(base))

	router.NoRoute(func(c *gin.Context) { NotFound(c, "route not found") })
	router.NoMethod(func(c *gin.Context) { MethodNotAllowed(c, "method not allowed") })

	chat := router.Group("/chat")
	if mw := corsMiddleware(origins); mw != nil {
		chat.Use(mw)
		chat.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	chat.POST("", h.ChatHandler)

	router.GET("/health", h.HealthHandler)
	return router
}

// corsMiddleware adds CORS headers for listed origins. Requests from other
// origins are served without them, leaving the browser to block the response.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
		allowed[o] = true
	}
	cfg.AllowOrigins = origins
	withHeaders := cors.New(cfg)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !allowed[origin] {
			return
		}
		withHeaders(c)
	}
}
