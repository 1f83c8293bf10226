package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with recovery and request logging.
func NewRouter(log *slog.Logger, handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	handler.Register(r.Group(""))

	return r
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.DebugContext(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
