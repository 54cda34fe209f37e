package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Becky0713/NOAH/config"
)

// Database wraps the gorm connection to the housing schema.
type Database struct {
	db     *gorm.DB
	driver string
	logger *logrus.Logger
}

// NewDatabase opens a connection using the configured driver. Postgres is
// the production target (with PostGIS); sqlite covers local development
// without a database server.
func NewDatabase(cfg *config.Config, logger *logrus.Logger) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.URL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{db: db, driver: cfg.Database.Driver, logger: logger}, nil
}

// NewDatabaseFromDB wraps an existing gorm connection, used in tests.
func NewDatabaseFromDB(db *gorm.DB, driver string, logger *logrus.Logger) *Database {
	return &Database{db: db, driver: driver, logger: logger}
}

// Ping verifies the underlying connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB exposes the raw gorm handle.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}
