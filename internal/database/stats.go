package database

import (
	"context"
	"fmt"

	"github.com/Becky0713/NOAH/internal/models"
)

// GetStats aggregates counts, coordinate coverage, per-borough breakdowns,
// date bounds and unit totals across the whole schema.
func (d *Database) GetStats(ctx context.Context) (*models.DatabaseStats, error) {
	stats := &models.DatabaseStats{}
	db := d.db.WithContext(ctx)

	err := db.Raw(`SELECT COUNT(*) FROM housing_projects`).Scan(&stats.TotalRecords).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	err = db.Raw(`
		SELECT COUNT(*)
		FROM housing_projects
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
	`).Scan(&stats.WithCoordinates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count records with coordinates: %w", err)
	}

	err = db.Raw(`
		SELECT borough, COUNT(*) AS count, COALESCE(SUM(total_units), 0) AS total_units
		FROM housing_projects
		WHERE borough IS NOT NULL AND borough <> ''
		GROUP BY borough
		ORDER BY count DESC
	`).Scan(&stats.ByBorough).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate borough stats: %w", err)
	}

	err = db.Raw(`
		SELECT
			MIN(project_start_date) AS earliest_start,
			MAX(project_start_date) AS latest_start,
			MIN(project_completion_date) AS earliest_completion,
			MAX(project_completion_date) AS latest_completion
		FROM housing_projects
	`).Scan(&stats.DateRange).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate date range: %w", err)
	}

	err = db.Raw(`
		SELECT
			COALESCE(SUM(total_units), 0) AS total_units,
			COALESCE(SUM(all_counted_units), 0) AS total_affordable_units,
			COALESCE(AVG(total_units), 0) AS avg_units_per_project,
			COALESCE(MAX(total_units), 0) AS max_units_per_project
		FROM housing_projects
	`).Scan(&stats.UnitStats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate unit stats: %w", err)
	}

	return stats, nil
}
