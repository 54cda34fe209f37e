package config

import "strings"

// Borough represents a NYC borough with its map defaults.
type Borough struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedBoroughs lists the five NYC boroughs in the spelling used by the
// upstream dataset.
var SupportedBoroughs = []Borough{
	{
		ID:        "manhattan",
		Name:      "Manhattan",
		Center:    []float64{40.7831, -73.9712},
		ZoomLevel: 12,
	},
	{
		ID:        "brooklyn",
		Name:      "Brooklyn",
		Center:    []float64{40.6782, -73.9442},
		ZoomLevel: 12,
	},
	{
		ID:        "queens",
		Name:      "Queens",
		Center:    []float64{40.7282, -73.7949},
		ZoomLevel: 11,
	},
	{
		ID:        "bronx",
		Name:      "Bronx",
		Center:    []float64{40.8448, -73.8648},
		ZoomLevel: 12,
	},
	{
		ID:        "staten_island",
		Name:      "Staten Island",
		Center:    []float64{40.5795, -74.1502},
		ZoomLevel: 12,
	},
}

// GetBoroughNames returns the canonical borough names.
func GetBoroughNames() []string {
	names := make([]string, len(SupportedBoroughs))
	for i, b := range SupportedBoroughs {
		names[i] = b.Name
	}
	return names
}

// GetBoroughByID returns a borough by its identifier.
func GetBoroughByID(id string) *Borough {
	for _, b := range SupportedBoroughs {
		if b.ID == id {
			return &b
		}
	}
	return nil
}

// NormalizeBorough maps free-form user input ("MANHATTAN", "staten island",
// "staten_island") onto the canonical dataset spelling. Unknown values are
// returned trimmed but otherwise untouched so the filter still applies.
func NormalizeBorough(name string) string {
	trimmed := strings.TrimSpace(name)
	key := strings.ToLower(strings.ReplaceAll(trimmed, "_", " "))
	for _, b := range SupportedBoroughs {
		if strings.ToLower(b.Name) == key || b.ID == strings.ReplaceAll(key, " ", "_") {
			return b.Name
		}
	}
	return trimmed
}
