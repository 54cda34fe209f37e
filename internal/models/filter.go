package models

import (
	"fmt"
	"time"
)

// Pagination bounds for the records endpoint. Out-of-range limits are
// rejected, not clamped, so callers get predictable behavior.
const (
	MinRecordLimit     = 1
	MaxRecordLimit     = 1000
	DefaultRecordLimit = 100
)

const filterDateFormat = "2006-01-02"

// Sort keys callers may request. No ordering is applied unless one is.
var allowedSortKeys = map[string]bool{
	"project_id":         true,
	"total_units":        true,
	"project_start_date": true,
}

// ValidationError marks a caller mistake: the API layer maps it to a 400
// instead of a 500.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// RecordFilter is the set of user-supplied constraints for the records
// endpoints. Zero values impose no constraint.
type RecordFilter struct {
	// Requested field subset; defaults to DefaultRecordFields
	Fields []string

	// Exact borough match, empty means no filter
	Borough string

	// Inclusive total-unit bounds; 0 means unbounded
	MinUnits int
	MaxUnits int

	// Inclusive project_start_date bounds, YYYY-MM-DD; empty means open
	StartDateFrom string
	StartDateTo   string

	Limit  int
	Offset int

	// Optional deterministic sort key for stable pagination
	OrderBy string
}

// ApplyDefaults fills in the default limit and field subset and removes
// duplicate field names while preserving order.
func (f *RecordFilter) ApplyDefaults() {
	if f.Limit == 0 {
		f.Limit = DefaultRecordLimit
	}
	if len(f.Fields) == 0 {
		f.Fields = append([]string(nil), DefaultRecordFields...)
	}

	seen := make(map[string]bool, len(f.Fields))
	deduped := f.Fields[:0]
	for _, name := range f.Fields {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		deduped = append(deduped, name)
	}
	f.Fields = deduped
}

// Validate rejects malformed filters. An empty numeric range (min > max) is
// not an error: it simply matches zero rows.
func (f *RecordFilter) Validate() error {
	if f.Limit < MinRecordLimit || f.Limit > MaxRecordLimit {
		return ValidationError(fmt.Sprintf("limit must be between %d and %d, got %d",
			MinRecordLimit, MaxRecordLimit, f.Limit))
	}
	if f.Offset < 0 {
		return ValidationError(fmt.Sprintf("offset must not be negative, got %d", f.Offset))
	}
	if f.MinUnits < 0 || f.MaxUnits < 0 {
		return ValidationError("unit bounds must not be negative")
	}
	for _, name := range f.Fields {
		if !KnownField(name) {
			return ValidationError(fmt.Sprintf("unknown field: %s", name))
		}
	}
	for _, d := range []struct{ name, value string }{
		{"start_date_from", f.StartDateFrom},
		{"start_date_to", f.StartDateTo},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(filterDateFormat, d.value); err != nil {
			return ValidationError(fmt.Sprintf("%s must be formatted as YYYY-MM-DD, got %q", d.name, d.value))
		}
	}
	if f.OrderBy != "" && !allowedSortKeys[f.OrderBy] {
		return ValidationError(fmt.Sprintf("unsupported sort key: %s", f.OrderBy))
	}
	return nil
}
