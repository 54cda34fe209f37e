package provider

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Mirror pages through a local PostgreSQL copy of the upstream dataset.
// Useful when the open-data API is rate limited or offline: the mirror is
// treated exactly like the upstream source and re-ingested row by row.
type Mirror struct {
	db *gorm.DB
}

// NewMirror connects to the mirror database.
func NewMirror(dsn string) (*Mirror, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mirror database: %w", err)
	}
	return &Mirror{db: db}, nil
}

// NewMirrorFromDB wraps an existing connection, used in tests.
func NewMirrorFromDB(db *gorm.DB) *Mirror {
	return &Mirror{db: db}
}

func (m *Mirror) Name() string {
	return "mirror"
}

// FetchPage reads one page of raw rows from the mirror, ordered by
// project_id for stable pagination.
func (m *Mirror) FetchPage(ctx context.Context, offset, limit int) ([]Record, error) {
	var rows []map[string]any
	err := m.db.WithContext(ctx).
		Table("housing_projects").
		Order("project_id").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read mirror page: %w", err)
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = row
	}
	return records, nil
}
