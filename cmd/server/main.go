package main

import (
	"log"

	_ "serviceboard/docs"
	"serviceboard/internal/config"
	"serviceboard/internal/server"
)

// @title           Service Board API
// @version         1.0
// @description     API for customer-facing service boards: action timelines, appointments and password-gated access.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a board access token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
