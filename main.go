// @title EduTrack API
// @version 1.0
// @description Quiz attempts, scoring and teacher analytics for the EduTrack dashboards.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"edutrack_backend/internal/app"
	"edutrack_backend/internal/config"
	"edutrack_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations on startup")
	envFile := flag.String("env", ".env", "dotenv file loaded before the config, ignored when missing")
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load %s: %v", *envFile, err)
		}
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *migrate

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
