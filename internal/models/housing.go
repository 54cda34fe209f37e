package models

import "time"

// HousingProject is one row of the housing_projects table: a single
// affordable-housing building/project as reported by NYC open data.
// ProjectID is the stable upstream key; every other column is overwritten
// on re-ingestion (upstream is authoritative).
type HousingProject struct {
	ProjectID   string `gorm:"column:project_id;primaryKey" json:"project_id"`
	ProjectName string `gorm:"column:project_name" json:"project_name"`
	BuildingID  string `gorm:"column:building_id" json:"building_id"`

	// Address
	HouseNumber string `gorm:"column:house_number" json:"house_number"`
	StreetName  string `gorm:"column:street_name" json:"street_name"`
	Borough     string `gorm:"column:borough" json:"borough"`
	Postcode    string `gorm:"column:postcode" json:"postcode"`

	// Administrative divisions
	BBL                         string `gorm:"column:bbl" json:"bbl"`
	BIN                         string `gorm:"column:bin" json:"bin"`
	CommunityBoard              string `gorm:"column:community_board" json:"community_board"`
	CouncilDistrict             int    `gorm:"column:council_district" json:"council_district"`
	CensusTract                 string `gorm:"column:census_tract" json:"census_tract"`
	NeighborhoodTabulationArea  string `gorm:"column:neighborhood_tabulation_area" json:"neighborhood_tabulation_area"`

	// Coordinates (WGS84 decimal degrees); nil when upstream has no fix.
	// The geom column is derived from these by the database and never
	// written by application code.
	Latitude          *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude         *float64 `gorm:"column:longitude" json:"longitude"`
	LatitudeInternal  *float64 `gorm:"column:latitude_internal" json:"latitude_internal"`
	LongitudeInternal *float64 `gorm:"column:longitude_internal" json:"longitude_internal"`

	// Dates
	ProjectStartDate       *time.Time `gorm:"column:project_start_date" json:"project_start_date"`
	ProjectCompletionDate  *time.Time `gorm:"column:project_completion_date" json:"project_completion_date"`
	BuildingCompletionDate *time.Time `gorm:"column:building_completion_date" json:"building_completion_date"`

	// Project attributes
	ReportingConstructionType    string `gorm:"column:reporting_construction_type" json:"reporting_construction_type"`
	ExtendedAffordabilityStatus  string `gorm:"column:extended_affordability_status" json:"extended_affordability_status"`
	PrevailingWageStatus         string `gorm:"column:prevailing_wage_status" json:"prevailing_wage_status"`

	// Unit counts by income tier
	ExtremelyLowIncomeUnits int `gorm:"column:extremely_low_income_units" json:"extremely_low_income_units"`
	VeryLowIncomeUnits      int `gorm:"column:very_low_income_units" json:"very_low_income_units"`
	LowIncomeUnits          int `gorm:"column:low_income_units" json:"low_income_units"`
	ModerateIncomeUnits     int `gorm:"column:moderate_income_units" json:"moderate_income_units"`
	MiddleIncomeUnits       int `gorm:"column:middle_income_units" json:"middle_income_units"`
	OtherIncomeUnits        int `gorm:"column:other_income_units" json:"other_income_units"`

	// Unit counts by bedroom count. Upstream does not guarantee these sum
	// to TotalUnits; treated as best effort.
	StudioUnits    int `gorm:"column:studio_units" json:"studio_units"`
	OneBRUnits     int `gorm:"column:one_br_units" json:"one_br_units"`
	TwoBRUnits     int `gorm:"column:two_br_units" json:"two_br_units"`
	ThreeBRUnits   int `gorm:"column:three_br_units" json:"three_br_units"`
	FourBRUnits    int `gorm:"column:four_br_units" json:"four_br_units"`
	FiveBRUnits    int `gorm:"column:five_br_units" json:"five_br_units"`
	SixBRUnits     int `gorm:"column:six_br_units" json:"six_br_units"`
	UnknownBRUnits int `gorm:"column:unknown_br_units" json:"unknown_br_units"`

	// Summary counts
	CountedRentalUnits        int `gorm:"column:counted_rental_units" json:"counted_rental_units"`
	CountedHomeownershipUnits int `gorm:"column:counted_homeownership_units" json:"counted_homeownership_units"`
	AllCountedUnits           int `gorm:"column:all_counted_units" json:"all_counted_units"`
	TotalUnits                int `gorm:"column:total_units" json:"total_units"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HousingProject) TableName() string {
	return "housing_projects"
}

// Address joins house number and street name, empty when both are missing.
func (p *HousingProject) Address() string {
	switch {
	case p.HouseNumber == "" && p.StreetName == "":
		return ""
	case p.HouseNumber == "":
		return p.StreetName
	case p.StreetName == "":
		return p.HouseNumber
	default:
		return p.HouseNumber + " " + p.StreetName
	}
}

// FieldMetadata describes one selectable column of the housing schema.
type FieldMetadata struct {
	FieldName   string `json:"field_name"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
}

// BoroughStats is the per-borough slice of the statistics endpoint.
type BoroughStats struct {
	Borough    string `json:"borough"`
	Count      int64  `json:"count"`
	TotalUnits int64  `json:"total_units"`
}

// DateRangeStats reports the observed project date bounds.
type DateRangeStats struct {
	EarliestStart      *time.Time `json:"earliest_start"`
	LatestStart        *time.Time `json:"latest_start"`
	EarliestCompletion *time.Time `json:"earliest_completion"`
	LatestCompletion   *time.Time `json:"latest_completion"`
}

// UnitStats aggregates unit counts across all projects.
type UnitStats struct {
	TotalUnits           int64   `json:"total_units"`
	TotalAffordableUnits int64   `json:"total_affordable_units"`
	AvgUnitsPerProject   float64 `json:"avg_units_per_project"`
	MaxUnitsPerProject   int64   `json:"max_units_per_project"`
}

// DatabaseStats is the response of the statistics endpoint.
type DatabaseStats struct {
	TotalRecords    int64          `json:"total_records"`
	WithCoordinates int64          `json:"with_coordinates"`
	ByBorough       []BoroughStats `json:"by_borough"`
	DateRange       DateRangeStats `json:"date_range"`
	UnitStats       UnitStats      `json:"unit_stats"`
}
