package main

import (
	"log"

	"pumprank-api/internal/helpers"
	"pumprank-api/internal/logger"
	"pumprank-api/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		// A missing .env file is fine in production, where variables are
		// set directly in the environment.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Initialize logger first
	logger.InitLogger()
	defer func() {
		_ = logger.Sync()
	}()

	r := gin.Default()
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	port := helpers.EnvOrDefault("PORT", "8080")
	logger.Info("server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
