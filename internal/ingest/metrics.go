package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noah_ingest_pages_fetched_total",
		Help: "Number of provider pages fetched, labelled by provider.",
	}, []string{"provider"})

	recordsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noah_ingest_records_upserted_total",
		Help: "Number of records written to the housing_projects table.",
	})

	recordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noah_ingest_records_skipped_total",
		Help: "Number of source records dropped during normalization.",
	})

	runFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noah_ingest_run_failures_total",
		Help: "Number of ingestion runs that aborted with an error.",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "noah_ingest_run_duration_seconds",
		Help:    "Wall-clock duration of full ingestion runs.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)
