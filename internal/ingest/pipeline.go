// Package ingest drives the page-by-page copy of the upstream dataset into
// the local database.
package ingest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/models"
	"github.com/Becky0713/NOAH/internal/normalize"
	"github.com/Becky0713/NOAH/internal/provider"
)

// Store is the slice of the database layer the pipeline writes through.
type Store interface {
	UpsertProjects(ctx context.Context, projects []*models.HousingProject) error
}

// Result summarizes one completed ingestion run.
type Result struct {
	Pages     int           `json:"pages"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"-"`
}

// Pipeline pulls pages from a provider, normalizes them and upserts each
// batch. Runs are resumable by design: re-ingesting the same data is a
// no-op thanks to the keyed upsert.
type Pipeline struct {
	provider   provider.Provider
	store      Store
	logger     *logrus.Logger
	batchSize  int
	maxRetries int
	retryDelay time.Duration
}

func NewPipeline(p provider.Provider, store Store, cfg *config.Config, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Pipeline{
		provider:   p,
		store:      store,
		logger:     logger,
		batchSize:  cfg.Sync.BatchSize,
		maxRetries: cfg.Sync.MaxRetries,
		retryDelay: cfg.SyncRetryDelay(),
	}
}

// Run copies the full dataset. It pages through the provider until a short
// or empty page signals the end, and aborts on the first page that cannot
// be fetched or stored after retries.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	p.logger.WithFields(logrus.Fields{
		"provider":   p.provider.Name(),
		"batch_size": p.batchSize,
	}).Info("Starting ingestion run")

	offset := 0
	for {
		page, err := p.provider.FetchPage(ctx, offset, p.batchSize)
		if err != nil {
			runFailures.Inc()
			return result, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		result.Pages++
		pagesFetched.WithLabelValues(p.provider.Name()).Inc()

		projects, skipped := p.normalizePage(page, offset)
		result.Skipped += skipped

		if err := p.upsertWithRetry(ctx, projects); err != nil {
			runFailures.Inc()
			return result, fmt.Errorf("failed to store page at offset %d: %w", offset, err)
		}
		result.Processed += len(projects)
		recordsUpserted.Add(float64(len(projects)))

		p.logger.WithFields(logrus.Fields{
			"offset":  offset,
			"fetched": len(page),
			"stored":  len(projects),
			"skipped": skipped,
		}).Debug("Processed page")

		offset += len(page)
		if len(page) < p.batchSize {
			break
		}
	}

	result.Duration = time.Since(start)
	runDuration.Observe(result.Duration.Seconds())

	p.logger.WithFields(logrus.Fields{
		"provider":  p.provider.Name(),
		"pages":     result.Pages,
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"duration":  result.Duration.Round(time.Millisecond).String(),
	}).Info("Ingestion run completed")

	return result, nil
}

// normalizePage converts raw records to model rows, dropping records that
// cannot be keyed. A bad record never aborts the run.
func (p *Pipeline) normalizePage(page []provider.Record, offset int) ([]*models.HousingProject, int) {
	projects := make([]*models.HousingProject, 0, len(page))
	skipped := 0
	for i, raw := range page {
		project, err := normalize.Record(raw)
		if err != nil {
			skipped++
			recordsSkipped.Inc()
			p.logger.WithError(err).WithFields(logrus.Fields{
				"offset": offset,
				"index":  i,
			}).Warn("Skipping record")
			continue
		}
		projects = append(projects, project)
	}
	return projects, skipped
}

func (p *Pipeline) upsertWithRetry(ctx context.Context, projects []*models.HousingProject) error {
	if len(projects) == 0 {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		lastErr = p.store.UpsertProjects(ctx, projects)
		if lastErr == nil {
			return nil
		}

		p.logger.WithError(lastErr).WithFields(logrus.Fields{
			"attempt":     attempt,
			"max_retries": p.maxRetries,
		}).Warn("Batch upsert failed")

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.retryDelay):
			}
		}
	}
	return lastErr
}
