package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter assembles the gin engine with logging and the v1 routes.
func NewRouter(log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	handler := NewHandler(log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/models", handler.Models)
		v1.POST("/solve", handler.Solve)
		v1.POST("/simulate", handler.Simulate)
	}

	return router
}

// Serve wraps the router with CORS and blocks on ListenAndServe.
func Serve(addr string, log zerolog.Logger) error {
	router := NewRouter(log)
	handler := cors.Default().Handler(router)
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, handler)
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
