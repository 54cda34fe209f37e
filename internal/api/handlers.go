package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/database"
	"github.com/Becky0713/NOAH/internal/geometry"
	"github.com/Becky0713/NOAH/internal/models"
)

// Store is the slice of the database layer the handlers read through.
type Store interface {
	QueryRecords(ctx context.Context, filter *models.RecordFilter) ([]database.RecordRow, error)
	GetStats(ctx context.Context) (*models.DatabaseStats, error)
	CountProjects(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Syncer triggers a manual ingestion run. TriggerSync reports false when a
// run is already in flight.
type Syncer interface {
	TriggerSync() bool
}

type Handler struct {
	store    Store
	syncer   Syncer
	logger   *logrus.Logger
	provider string
}

func NewHandler(store Store, syncer Syncer, providerName string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:    store,
		syncer:   syncer,
		logger:   logger,
		provider: providerName,
	}
}

// GetHealth reports liveness plus a database round trip and row count.
func (h *Handler) GetHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Health check database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "down",
			"provider": h.provider,
		})
		return
	}

	count, err := h.store.CountProjects(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Health check record count failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "up",
			"provider": h.provider,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"provider": h.provider,
		"records":  count,
	})
}

// GetRegions returns the supported boroughs with their map centers.
func (h *Handler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions": config.SupportedBoroughs,
	})
}

// GetFieldMetadata returns the queryable dataset columns and their types.
func (h *Handler) GetFieldMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": models.FieldCatalog,
		"count":  len(models.FieldCatalog),
	})
}

// GetRecords returns filtered housing records as flat JSON objects.
func (h *Handler) GetRecords(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	records, err := h.store.QueryRecords(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// GetRecordsGeoJSON returns the same filtered records as a point
// FeatureCollection, skipping records without coordinates.
func (h *Handler) GetRecordsGeoJSON(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	records, err := h.store.QueryRecords(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query records"})
		return
	}

	c.JSON(http.StatusOK, geometry.ProjectCollection(records))
}

// GetStats returns dataset-wide aggregates.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.GetStats(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// TriggerSync starts a manual ingestion run in the background. A second
// request while one is running gets a 409.
func (h *Handler) TriggerSync(c *gin.Context) {
	if h.syncer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sync is not configured"})
		return
	}

	if !h.syncer.TriggerSync() {
		c.JSON(http.StatusConflict, gin.H{"error": "A sync is already running"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "Sync started",
	})
}

// bindFilter parses and validates the shared record filter query
// parameters. On a caller mistake it writes the 400 itself and returns
// false.
func (h *Handler) bindFilter(c *gin.Context) (*models.RecordFilter, bool) {
	filter := &models.RecordFilter{
		Borough:       c.Query("borough"),
		StartDateFrom: c.Query("start_date_from"),
		StartDateTo:   c.Query("start_date_to"),
		OrderBy:       c.Query("order_by"),
	}

	if fields := c.Query("fields"); fields != "" {
		for _, name := range strings.Split(fields, ",") {
			filter.Fields = append(filter.Fields, strings.TrimSpace(name))
		}
	}

	// An absent limit gets the default; a supplied one is validated as-is,
	// so an explicit limit=0 is rejected rather than silently replaced.
	if c.Query("limit") == "" {
		filter.Limit = models.DefaultRecordLimit
	}

	for _, p := range []struct {
		name   string
		target *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
		{"min_units", &filter.MinUnits},
		{"max_units", &filter.MaxUnits},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": p.name + " must be an integer"})
			return nil, false
		}
		*p.target = value
	}

	if err := filter.Validate(); err != nil {
		var validationErr models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		} else {
			h.logger.WithError(err).Error("Unexpected filter validation failure")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate query"})
		}
		return nil, false
	}

	filter.ApplyDefaults()

	return filter, true
}
