package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/obrunogonzaga/formatura-2025/config"
	"github.com/obrunogonzaga/formatura-2025/http/controller"
	routes "github.com/obrunogonzaga/formatura-2025/http/route"
	infraPkg "github.com/obrunogonzaga/formatura-2025/infra"
	"github.com/obrunogonzaga/formatura-2025/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Port)
	serveErr := router.Run(":" + cfg.EnvConfig.Port)

	// Flush telemetry and close the broker channel before exiting, even when
	// the server failed to start.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	infra.Shutdown(ctx)
	cancel()

	if serveErr != nil {
		log.Printf("Failed to start server: %v", serveErr)
		os.Exit(1)
	}
}
