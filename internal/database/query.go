package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/models"
	"github.com/Becky0713/NOAH/internal/normalize"
)

// coreColumns are always selected regardless of the requested field subset
// so every response row can carry the normalized core keys the UI relies on.
var coreColumns = []string{
	"project_id",
	"project_name",
	"house_number",
	"street_name",
	"borough",
	"postcode",
	"latitude",
	"longitude",
	"total_units",
	"all_counted_units",
	"project_start_date",
	"project_completion_date",
}

// RecordRow is one flat response record: normalized core keys plus a _raw
// copy of the columns the caller selected.
type RecordRow = map[string]any

// QueryRecords translates the filter into a parameterized query and returns
// matching rows. The filter must already be validated.
func (d *Database) QueryRecords(ctx context.Context, filter *models.RecordFilter) ([]RecordRow, error) {
	rows, err := d.queryRaw(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query housing records: %w", err)
	}

	records := make([]RecordRow, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(row, filter.Fields))
	}
	return records, nil
}

func (d *Database) queryRaw(ctx context.Context, filter *models.RecordFilter) ([]map[string]any, error) {
	query := d.db.WithContext(ctx).
		Table("housing_projects").
		Select(selectColumns(filter.Fields))

	query = applyFilter(query, filter)

	if filter.OrderBy != "" {
		query = query.Order(filter.OrderBy)
	}

	var rows []map[string]any
	err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error
	return rows, err
}

// applyFilter adds the WHERE clauses shared by the records and geojson
// endpoints. Zero values impose no constraint.
func applyFilter(query *gorm.DB, filter *models.RecordFilter) *gorm.DB {
	if filter.Borough != "" {
		query = query.Where("borough = ?", config.NormalizeBorough(filter.Borough))
	}
	if filter.MinUnits > 0 {
		query = query.Where("total_units >= ?", filter.MinUnits)
	}
	if filter.MaxUnits > 0 {
		query = query.Where("total_units <= ?", filter.MaxUnits)
	}
	// Date bounds are bound as times, not strings: sqlite stores dates as
	// datetime text, and a lexicographic compare against a bare YYYY-MM-DD
	// string would drop rows on the boundary day. The upper bound is applied
	// as a strict compare against the following midnight to stay inclusive.
	if from := normalize.Date(filter.StartDateFrom); from != nil {
		query = query.Where("project_start_date >= ?", *from)
	}
	if to := normalize.Date(filter.StartDateTo); to != nil {
		query = query.Where("project_start_date < ?", to.AddDate(0, 0, 1))
	}
	return query
}

// selectColumns merges the requested fields with the core columns,
// preserving request order and dropping duplicates.
func selectColumns(fields []string) []string {
	columns := append([]string(nil), fields...)
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	for _, c := range coreColumns {
		if !seen[c] {
			columns = append(columns, c)
			seen[c] = true
		}
	}
	return columns
}

func buildRecord(row map[string]any, fields []string) RecordRow {
	borough := normalize.String(row["borough"])

	record := RecordRow{
		"project_id":              normalize.String(row["project_id"]),
		"project_name":            normalize.String(row["project_name"]),
		"address":                 addressFromRow(row),
		"postcode":                normalize.String(row["postcode"]),
		"latitude":                floatValue(row["latitude"]),
		"longitude":               floatValue(row["longitude"]),
		"region":                  borough,
		"borough":                 borough,
		"total_units":             normalize.Int(row["total_units"]),
		"affordable_units":        normalize.Int(row["all_counted_units"]),
		"project_start_date":      dateValue(row["project_start_date"]),
		"project_completion_date": dateValue(row["project_completion_date"]),
	}

	raw := make(map[string]any, len(fields))
	for _, name := range fields {
		raw[name] = presentValue(row[name])
	}
	record["_raw"] = raw

	return record
}

func addressFromRow(row map[string]any) any {
	houseNumber := normalize.String(row["house_number"])
	streetName := normalize.String(row["street_name"])
	switch {
	case houseNumber == "" && streetName == "":
		return nil
	case houseNumber == "":
		return streetName
	case streetName == "":
		return houseNumber
	default:
		return houseNumber + " " + streetName
	}
}

// floatValue returns a *float64 or nil so JSON output distinguishes missing
// coordinates from zero.
func floatValue(v any) any {
	f := normalize.Float(v)
	if f == nil {
		return nil
	}
	return *f
}

// dateValue renders database date values as plain YYYY-MM-DD strings.
func dateValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format("2006-01-02")
	default:
		if d := normalize.Date(v); d != nil {
			return d.Format("2006-01-02")
		}
		return nil
	}
}

// presentValue keeps raw values JSON-friendly: dates become strings,
// everything else passes through as scanned.
func presentValue(v any) any {
	switch v.(type) {
	case time.Time, *time.Time:
		return dateValue(v)
	default:
		return v
	}
}
