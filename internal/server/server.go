package server

import (
	"os"
	"strings"
	"time"

	"pumprank-api/internal/client/gmgn"
	"pumprank-api/internal/handlers"
	"pumprank-api/internal/helpers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler Definitions
var (
	healthHandler *handlers.HealthHandler
	tokenHandler  *handlers.TokenHandler
)

// InitializeHandlers constructs the GMGN client and the API handlers.
// GMGN_BASE_URL and UPSTREAM_TIMEOUT_SECONDS override the upstream defaults.
func InitializeHandlers() {
	var opts []gmgn.Option
	if baseURL := os.Getenv("GMGN_BASE_URL"); baseURL != "" {
		opts = append(opts, gmgn.WithBaseURL(baseURL))
	}
	if secs := helpers.EnvIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 0); secs > 0 {
		opts = append(opts, gmgn.WithTimeout(time.Duration(secs)*time.Second))
	}
	client := gmgn.NewClient(opts...)

	healthHandler = handlers.NewHealthHandler()
	tokenHandler = handlers.NewTokenHandler(client)
}

// InitializeRoutes wires middleware and the API routes onto the router.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(handlers.RequestID())

	// if we are not in production, log every request
	if os.Getenv("GIN_MODE") != "release" {
		router.Use(handlers.LogRequest())
	}

	router.GET("/", healthHandler.Welcome)
	router.GET("/health", healthHandler.Health)
	router.GET("/top-tokens/", tokenHandler.GetTopTokens)
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	corsConfig.AllowOrigins = envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	corsConfig.AllowMethods = envList("CORS_ALLOWED_METHODS", []string{"GET", "OPTIONS"})
	corsConfig.AllowHeaders = envList("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})

	if exposed := envList("CORS_EXPOSED_HEADERS", nil); exposed != nil {
		corsConfig.ExposeHeaders = exposed
	}

	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}

// envList reads a comma-separated environment variable, trimming each entry.
func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
