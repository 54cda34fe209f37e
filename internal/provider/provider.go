// Package provider implements the switchable data sources feeding the
// ingestion pipeline. A provider is selected once at startup; call sites
// only ever see the Provider interface.
package provider

import "context"

// Record is one raw upstream record before normalization. Values are
// loosely typed: Socrata returns strings for almost everything.
type Record = map[string]any

// Provider pages through an upstream housing dataset using an offset/limit
// cursor. A page shorter than limit signals the end of the data.
type Provider interface {
	// FetchPage returns up to limit records starting at offset, ordered by
	// project_id so paging is stable across requests.
	FetchPage(ctx context.Context, offset, limit int) ([]Record, error)

	// Name identifies the provider in logs.
	Name() string
}
