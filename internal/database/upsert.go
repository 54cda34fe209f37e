package database

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/Becky0713/NOAH/internal/models"
)

// upsertColumns are overwritten on conflict: every data column except the
// key and the audit/derived columns. updated_at and geom are maintained by
// database triggers so the upsert stays a single atomic statement.
var upsertColumns = []string{
	"project_name",
	"building_id",
	"house_number",
	"street_name",
	"borough",
	"postcode",
	"bbl",
	"bin",
	"community_board",
	"council_district",
	"census_tract",
	"neighborhood_tabulation_area",
	"latitude",
	"longitude",
	"latitude_internal",
	"longitude_internal",
	"project_start_date",
	"project_completion_date",
	"building_completion_date",
	"reporting_construction_type",
	"extended_affordability_status",
	"prevailing_wage_status",
	"extremely_low_income_units",
	"very_low_income_units",
	"low_income_units",
	"moderate_income_units",
	"middle_income_units",
	"other_income_units",
	"studio_units",
	"one_br_units",
	"two_br_units",
	"three_br_units",
	"four_br_units",
	"five_br_units",
	"six_br_units",
	"unknown_br_units",
	"counted_rental_units",
	"counted_homeownership_units",
	"all_counted_units",
	"total_units",
}

// UpsertProjects writes a batch of normalized projects in one statement:
// insert new project_ids, overwrite all data columns for existing ones
// (last write wins, upstream is authoritative).
func (d *Database) UpsertProjects(ctx context.Context, projects []*models.HousingProject) error {
	if len(projects) == 0 {
		return nil
	}

	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(&projects).Error
	if err != nil {
		return fmt.Errorf("failed to upsert housing projects: %w", err)
	}
	return nil
}

// CountProjects returns the number of rows in the schema.
func (d *Database) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.HousingProject{}).Count(&count).Error
	return count, err
}
