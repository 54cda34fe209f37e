package provider

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fixture.json
var fixtureData []byte

// Fixture serves a small embedded sample of the upstream dataset. Used for
// local development and demos without network or database access.
type Fixture struct {
	records []Record
}

// NewFixture loads the embedded sample records.
func NewFixture() (*Fixture, error) {
	var records []Record
	if err := json.Unmarshal(fixtureData, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fixture data: %w", err)
	}
	return &Fixture{records: records}, nil
}

// NewFixtureFromRecords builds a fixture provider from explicit records,
// used in tests.
func NewFixtureFromRecords(records []Record) *Fixture {
	return &Fixture{records: records}
}

func (f *Fixture) Name() string {
	return "fixture"
}

// FetchPage slices the in-memory sample the same way the real providers
// page their sources.
func (f *Fixture) FetchPage(ctx context.Context, offset, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset >= len(f.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.records) {
		end = len(f.records)
	}
	return f.records[offset:end], nil
}

// Len returns the number of embedded sample records.
func (f *Fixture) Len() int {
	return len(f.records)
}
