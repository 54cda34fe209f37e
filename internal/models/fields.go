package models

// FieldCatalog lists every selectable column of housing_projects in schema
// order, with the semantic type names the UI understands. Audit columns and
// the derived geometry are deliberately absent: they are not selectable.
var FieldCatalog = []FieldMetadata{
	{FieldName: "project_id", DataType: "text", Description: "Unique identifier of the affordable housing project"},
	{FieldName: "project_name", DataType: "text", Description: "Name of the project"},
	{FieldName: "building_id", DataType: "text", Description: "Unique identifier of the building"},
	{FieldName: "house_number", DataType: "text", Description: "House number of the building address"},
	{FieldName: "street_name", DataType: "text", Description: "Street name of the building address"},
	{FieldName: "borough", DataType: "text", Description: "NYC borough the building is located in"},
	{FieldName: "postcode", DataType: "text", Description: "ZIP code of the building address"},
	{FieldName: "bbl", DataType: "text", Description: "Borough-block-lot tax identifier"},
	{FieldName: "bin", DataType: "text", Description: "Building identification number"},
	{FieldName: "community_board", DataType: "text", Description: "Community board district"},
	{FieldName: "council_district", DataType: "number", Description: "City council district"},
	{FieldName: "census_tract", DataType: "text", Description: "Census tract"},
	{FieldName: "neighborhood_tabulation_area", DataType: "text", Description: "Neighborhood tabulation area"},
	{FieldName: "latitude", DataType: "number", Description: "Latitude in WGS84 decimal degrees"},
	{FieldName: "longitude", DataType: "number", Description: "Longitude in WGS84 decimal degrees"},
	{FieldName: "latitude_internal", DataType: "number", Description: "Latitude of the internal building centroid"},
	{FieldName: "longitude_internal", DataType: "number", Description: "Longitude of the internal building centroid"},
	{FieldName: "project_start_date", DataType: "calendar_date", Description: "Date the project started"},
	{FieldName: "project_completion_date", DataType: "calendar_date", Description: "Date the project was completed"},
	{FieldName: "building_completion_date", DataType: "calendar_date", Description: "Date the building was completed"},
	{FieldName: "reporting_construction_type", DataType: "text", Description: "New construction or preservation"},
	{FieldName: "extended_affordability_status", DataType: "text", Description: "Whether the project has extended affordability"},
	{FieldName: "prevailing_wage_status", DataType: "text", Description: "Prevailing wage status of the project"},
	{FieldName: "extremely_low_income_units", DataType: "number", Description: "Units affordable at extremely low income"},
	{FieldName: "very_low_income_units", DataType: "number", Description: "Units affordable at very low income"},
	{FieldName: "low_income_units", DataType: "number", Description: "Units affordable at low income"},
	{FieldName: "moderate_income_units", DataType: "number", Description: "Units affordable at moderate income"},
	{FieldName: "middle_income_units", DataType: "number", Description: "Units affordable at middle income"},
	{FieldName: "other_income_units", DataType: "number", Description: "Units at other income levels"},
	{FieldName: "studio_units", DataType: "number", Description: "Studio units"},
	{FieldName: "one_br_units", DataType: "number", Description: "One-bedroom units"},
	{FieldName: "two_br_units", DataType: "number", Description: "Two-bedroom units"},
	{FieldName: "three_br_units", DataType: "number", Description: "Three-bedroom units"},
	{FieldName: "four_br_units", DataType: "number", Description: "Four-bedroom units"},
	{FieldName: "five_br_units", DataType: "number", Description: "Five-bedroom units"},
	{FieldName: "six_br_units", DataType: "number", Description: "Six-bedroom units"},
	{FieldName: "unknown_br_units", DataType: "number", Description: "Units with unknown bedroom count"},
	{FieldName: "counted_rental_units", DataType: "number", Description: "Counted rental units"},
	{FieldName: "counted_homeownership_units", DataType: "number", Description: "Counted homeownership units"},
	{FieldName: "all_counted_units", DataType: "number", Description: "All units counted toward the housing plan"},
	{FieldName: "total_units", DataType: "number", Description: "Total units in the building"},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]FieldMetadata {
	idx := make(map[string]FieldMetadata, len(FieldCatalog))
	for _, f := range FieldCatalog {
		idx[f.FieldName] = f
	}
	return idx
}

// KnownField reports whether name is a selectable column.
func KnownField(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

// DefaultRecordFields is the field subset returned when the caller does not
// request one: enough to render the map, table and charts.
var DefaultRecordFields = []string{
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
	"studio_units",
	"project_start_date",
	"project_completion_date",
}
