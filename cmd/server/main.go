package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/api"
	"github.com/Becky0713/NOAH/internal/database"
	"github.com/Becky0713/NOAH/internal/ingest"
	"github.com/Becky0713/NOAH/internal/provider"
	"github.com/Becky0713/NOAH/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// .env is optional, the environment wins either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	logger.Info("Running database migrations")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	source, err := provider.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build data provider")
	}
	logger.WithField("provider", source.Name()).Info("Data provider ready")

	pipeline := ingest.NewPipeline(source, db, cfg, logger)

	syncScheduler := scheduler.NewScheduler(
		pipeline,
		logger,
		time.Duration(cfg.Sync.IntervalHours)*time.Hour,
		cfg.Sync.OnStartup,
	)
	syncScheduler.Start()
	defer syncScheduler.Stop()

	handler := api.NewHandler(db, syncScheduler, source.Name(), logger)

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler, cfg)

	logger.WithField("port", cfg.Port).Info("Starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
