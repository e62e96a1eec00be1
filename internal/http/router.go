package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"saju-api/internal/service"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configura el router de Gin con middlewares y rutas base.
// Con jwtSvc nil las rutas /v1 quedan abiertas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	chartH *ChartHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.POST("/token", authH.IssueToken)
	auth.POST("/revoke", authH.RevokeToken)

	v1 := r.Group("/v1")
	if jwtSvc != nil {
		v1.Use(JWTAuthMiddleware(jwtSvc))
	}
	v1.POST("/charts", chartH.CreateChart)
	v1.POST("/compatibility", chartH.CreateCompatibility)

	return r
}

// requestIDMiddleware respeta un X-Request-ID entrante o genera uno.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
