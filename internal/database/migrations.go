package database

import (
	"fmt"

	"github.com/Becky0713/NOAH/config"
)

const createTablePostgres = `
CREATE TABLE IF NOT EXISTS housing_projects (
	project_id TEXT PRIMARY KEY,
	project_name TEXT,
	building_id TEXT,
	house_number TEXT,
	street_name TEXT,
	borough TEXT,
	postcode TEXT,
	bbl TEXT,
	bin TEXT,
	community_board TEXT,
	council_district INTEGER NOT NULL DEFAULT 0,
	census_tract TEXT,
	neighborhood_tabulation_area TEXT,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	latitude_internal DOUBLE PRECISION,
	longitude_internal DOUBLE PRECISION,
	project_start_date DATE,
	project_completion_date DATE,
	building_completion_date DATE,
	reporting_construction_type TEXT,
	extended_affordability_status TEXT,
	prevailing_wage_status TEXT,
	extremely_low_income_units INTEGER NOT NULL DEFAULT 0,
	very_low_income_units INTEGER NOT NULL DEFAULT 0,
	low_income_units INTEGER NOT NULL DEFAULT 0,
	moderate_income_units INTEGER NOT NULL DEFAULT 0,
	middle_income_units INTEGER NOT NULL DEFAULT 0,
	other_income_units INTEGER NOT NULL DEFAULT 0,
	studio_units INTEGER NOT NULL DEFAULT 0,
	one_br_units INTEGER NOT NULL DEFAULT 0,
	two_br_units INTEGER NOT NULL DEFAULT 0,
	three_br_units INTEGER NOT NULL DEFAULT 0,
	four_br_units INTEGER NOT NULL DEFAULT 0,
	five_br_units INTEGER NOT NULL DEFAULT 0,
	six_br_units INTEGER NOT NULL DEFAULT 0,
	unknown_br_units INTEGER NOT NULL DEFAULT 0,
	counted_rental_units INTEGER NOT NULL DEFAULT 0,
	counted_homeownership_units INTEGER NOT NULL DEFAULT 0,
	all_counted_units INTEGER NOT NULL DEFAULT 0,
	total_units INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const createTableSQLite = `
CREATE TABLE IF NOT EXISTS housing_projects (
	project_id TEXT PRIMARY KEY,
	project_name TEXT,
	building_id TEXT,
	house_number TEXT,
	street_name TEXT,
	borough TEXT,
	postcode TEXT,
	bbl TEXT,
	bin TEXT,
	community_board TEXT,
	council_district INTEGER NOT NULL DEFAULT 0,
	census_tract TEXT,
	neighborhood_tabulation_area TEXT,
	latitude REAL,
	longitude REAL,
	latitude_internal REAL,
	longitude_internal REAL,
	project_start_date DATE,
	project_completion_date DATE,
	building_completion_date DATE,
	reporting_construction_type TEXT,
	extended_affordability_status TEXT,
	prevailing_wage_status TEXT,
	extremely_low_income_units INTEGER NOT NULL DEFAULT 0,
	very_low_income_units INTEGER NOT NULL DEFAULT 0,
	low_income_units INTEGER NOT NULL DEFAULT 0,
	moderate_income_units INTEGER NOT NULL DEFAULT 0,
	middle_income_units INTEGER NOT NULL DEFAULT 0,
	other_income_units INTEGER NOT NULL DEFAULT 0,
	studio_units INTEGER NOT NULL DEFAULT 0,
	one_br_units INTEGER NOT NULL DEFAULT 0,
	two_br_units INTEGER NOT NULL DEFAULT 0,
	three_br_units INTEGER NOT NULL DEFAULT 0,
	four_br_units INTEGER NOT NULL DEFAULT 0,
	five_br_units INTEGER NOT NULL DEFAULT 0,
	six_br_units INTEGER NOT NULL DEFAULT 0,
	unknown_br_units INTEGER NOT NULL DEFAULT 0,
	counted_rental_units INTEGER NOT NULL DEFAULT 0,
	counted_homeownership_units INTEGER NOT NULL DEFAULT 0,
	all_counted_units INTEGER NOT NULL DEFAULT 0,
	total_units INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Postgres-only statements: the derived geometry column with its triggers,
// the updated_at trigger, and the query-pattern indexes. The geometry is
// recomputed from latitude/longitude on every write and is NULL whenever
// either coordinate is NULL, so application code never touches it.
var postgresMigrations = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis;`,

	`ALTER TABLE housing_projects ADD COLUMN IF NOT EXISTS geom geometry(Point, 4326);`,

	`CREATE OR REPLACE FUNCTION housing_projects_derive_geom() RETURNS trigger AS $$
	BEGIN
		IF NEW.latitude IS NULL OR NEW.longitude IS NULL THEN
			NEW.geom := NULL;
		ELSE
			NEW.geom := ST_SetSRID(ST_MakePoint(NEW.longitude, NEW.latitude), 4326);
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,

	`DROP TRIGGER IF EXISTS trg_housing_projects_geom ON housing_projects;`,

	`CREATE TRIGGER trg_housing_projects_geom
	BEFORE INSERT OR UPDATE ON housing_projects
	FOR EACH ROW EXECUTE FUNCTION housing_projects_derive_geom();`,

	`CREATE OR REPLACE FUNCTION housing_projects_touch_updated_at() RETURNS trigger AS $$
	BEGIN
		NEW.updated_at := CURRENT_TIMESTAMP;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,

	`DROP TRIGGER IF EXISTS trg_housing_projects_updated_at ON housing_projects;`,

	`CREATE TRIGGER trg_housing_projects_updated_at
	BEFORE UPDATE ON housing_projects
	FOR EACH ROW EXECUTE FUNCTION housing_projects_touch_updated_at();`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_geom
	ON housing_projects USING GIST (geom);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_borough
	ON housing_projects (borough);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_total_units
	ON housing_projects (total_units);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_start_date
	ON housing_projects (project_start_date);`,
}

// SQLite has no PostGIS; index raw coordinates instead.
var sqliteMigrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_housing_projects_coordinates
	ON housing_projects (latitude, longitude);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_borough
	ON housing_projects (borough);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_total_units
	ON housing_projects (total_units);`,

	`CREATE INDEX IF NOT EXISTS idx_housing_projects_start_date
	ON housing_projects (project_start_date);`,
}

// RunMigrations creates the housing schema if it does not exist yet. All
// statements are idempotent, so this runs unconditionally at startup.
func (d *Database) RunMigrations() error {
	var statements []string
	switch d.driver {
	case config.DriverPostgres:
		statements = append([]string{createTablePostgres}, postgresMigrations...)
	case config.DriverSQLite:
		statements = append([]string{createTableSQLite}, sqliteMigrations...)
	default:
		return fmt.Errorf("unsupported database driver: %s", d.driver)
	}

	for _, stmt := range statements {
		if err := d.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
