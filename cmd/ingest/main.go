// Command ingest runs one full sync of the upstream dataset into the local
// database and exits. Intended for cron jobs and first-time backfills.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/database"
	"github.com/Becky0713/NOAH/internal/ingest"
	"github.com/Becky0713/NOAH/internal/provider"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

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

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	source, err := provider.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build data provider")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := ingest.NewPipeline(source, db, cfg, logger)
	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Ingestion run failed")
	}

	logger.WithFields(logrus.Fields{
		"pages":     result.Pages,
		"processed": result.Processed,
		"skipped":   result.Skipped,
	}).Info("Ingestion finished")
}
