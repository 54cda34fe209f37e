// Package normalize converts raw upstream records into typed housing
// projects. Upstream values are loosely typed (numbers as strings, blank
// strings for nulls, several date formats), so every helper falls back to a
// safe zero value instead of returning an error.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Becky0713/NOAH/internal/models"
)

// ErrMissingProjectID is returned for records that cannot be minimally
// identified. Such records are rejected and reported, never silently dropped.
var ErrMissingProjectID = errors.New("record has no project_id")

// Socrata emits "floating timestamps" without a zone; plain dates appear in
// CSV-derived mirrors.
var dateFormats = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// String returns the raw value as a trimmed string; nil becomes "".
func String(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// Int parses a count field. Missing, empty, or non-numeric values become 0.
// Decimal strings like "12.0" are accepted and truncated.
func Int(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	s := String(v)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// Float parses a coordinate field. Missing, empty, or non-numeric values
// become nil rather than 0: zero is a valid coordinate.
func Float(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f := n
		return &f
	case int:
		f := float64(n)
		return &f
	}
	s := String(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Date parses a calendar date field. Invalid or missing values become nil.
func Date(v any) *time.Time {
	s := String(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// Record converts one raw upstream record into a typed HousingProject.
// The only failure mode is a missing project_id; every other field
// normalizes to its null-safe zero value.
func Record(raw map[string]any) (*models.HousingProject, error) {
	id := String(raw["project_id"])
	if id == "" {
		return nil, ErrMissingProjectID
	}

	return &models.HousingProject{
		ProjectID:   id,
		ProjectName: String(raw["project_name"]),
		BuildingID:  String(raw["building_id"]),

		HouseNumber: String(raw["house_number"]),
		StreetName:  String(raw["street_name"]),
		Borough:     String(raw["borough"]),
		Postcode:    String(raw["postcode"]),

		BBL:                        String(raw["bbl"]),
		BIN:                        String(raw["bin"]),
		CommunityBoard:             String(raw["community_board"]),
		CouncilDistrict:            Int(raw["council_district"]),
		CensusTract:                String(raw["census_tract"]),
		NeighborhoodTabulationArea: String(raw["neighborhood_tabulation_area"]),

		Latitude:          Float(raw["latitude"]),
		Longitude:         Float(raw["longitude"]),
		LatitudeInternal:  Float(raw["latitude_internal"]),
		LongitudeInternal: Float(raw["longitude_internal"]),

		ProjectStartDate:       Date(raw["project_start_date"]),
		ProjectCompletionDate:  Date(raw["project_completion_date"]),
		BuildingCompletionDate: Date(raw["building_completion_date"]),

		ReportingConstructionType:   String(raw["reporting_construction_type"]),
		ExtendedAffordabilityStatus: String(raw["extended_affordability_status"]),
		PrevailingWageStatus:        String(raw["prevailing_wage_status"]),

		ExtremelyLowIncomeUnits: Int(raw["extremely_low_income_units"]),
		VeryLowIncomeUnits:      Int(raw["very_low_income_units"]),
		LowIncomeUnits:          Int(raw["low_income_units"]),
		ModerateIncomeUnits:     Int(raw["moderate_income_units"]),
		MiddleIncomeUnits:       Int(raw["middle_income_units"]),
		OtherIncomeUnits:        Int(raw["other_income_units"]),

		// Upstream names bedroom columns _1_br_units .. _6_br_units.
		StudioUnits:    Int(raw["studio_units"]),
		OneBRUnits:     Int(raw["_1_br_units"]),
		TwoBRUnits:     Int(raw["_2_br_units"]),
		ThreeBRUnits:   Int(raw["_3_br_units"]),
		FourBRUnits:    Int(raw["_4_br_units"]),
		FiveBRUnits:    Int(raw["_5_br_units"]),
		SixBRUnits:     Int(raw["_6_br_units"]),
		UnknownBRUnits: Int(raw["unknown_br_units"]),

		CountedRentalUnits:        Int(raw["counted_rental_units"]),
		CountedHomeownershipUnits: Int(raw["counted_homeownership_units"]),
		AllCountedUnits:           Int(raw["all_counted_units"]),
		TotalUnits:                Int(raw["total_units"]),
	}, nil
}
