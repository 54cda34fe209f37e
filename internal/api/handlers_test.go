package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Becky0713/NOAH/config"
	"github.com/Becky0713/NOAH/internal/database"
	"github.com/Becky0713/NOAH/internal/models"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) QueryRecords(ctx context.Context, filter *models.RecordFilter) ([]database.RecordRow, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]database.RecordRow), args.Error(1)
}

func (m *MockStore) GetStats(ctx context.Context) (*models.DatabaseStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.DatabaseStats), args.Error(1)
}

func (m *MockStore) CountProjects(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSyncer is a mock implementation of the Syncer interface
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) TriggerSync() bool {
	args := m.Called()
	return args.Bool(0)
}

func newTestRouter(store Store, syncer Syncer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{CORSAllowOrigins: []string{"*"}}
	handler := NewHandler(store, syncer, "fixture", logger)

	router := gin.New()
	SetupRoutes(router, handler, cfg)
	return router
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	store := &MockStore{}
	store.On("Ping", mock.Anything).Return(nil)
	store.On("CountProjects", mock.Anything).Return(int64(7241), nil)

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["database"])
	assert.Equal(t, "fixture", body["provider"])
	assert.Equal(t, float64(7241), body["records"])
}

func TestGetHealthDatabaseDown(t *testing.T) {
	store := &MockStore{}
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "down", body["database"])
}

func TestGetRegions(t *testing.T) {
	router := newTestRouter(&MockStore{}, nil)
	w := performRequest(router, http.MethodGet, "/api/regions")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Regions []config.Borough `json:"regions"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Regions, 5)
}

func TestGetFieldMetadata(t *testing.T) {
	router := newTestRouter(&MockStore{}, nil)
	w := performRequest(router, http.MethodGet, "/api/metadata/fields")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Fields []models.FieldMetadata `json:"fields"`
		Count  int                    `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, len(models.FieldCatalog), body.Count)
	assert.Len(t, body.Fields, body.Count)
}

func TestGetRecords(t *testing.T) {
	store := &MockStore{}
	store.On("QueryRecords", mock.Anything, mock.MatchedBy(func(f *models.RecordFilter) bool {
		return f.Borough == "Bronx" && f.MinUnits == 10 && f.Limit == 50
	})).Return([]database.RecordRow{
		{"project_id": "1", "borough": "Bronx"},
		{"project_id": "2", "borough": "Bronx"},
	}, nil)

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/api/records?borough=Bronx&min_units=10&limit=50")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(50), body["limit"])
	store.AssertExpectations(t)
}

func TestGetRecordsRejectsOversizedLimit(t *testing.T) {
	store := &MockStore{}
	router := newTestRouter(store, nil)

	w := performRequest(router, http.MethodGet, "/api/records?limit=5000")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be between")
	store.AssertNotCalled(t, "QueryRecords")
}

func TestGetRecordsRejectsZeroLimit(t *testing.T) {
	store := &MockStore{}
	router := newTestRouter(store, nil)

	w := performRequest(router, http.MethodGet, "/api/records?limit=0")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be between")
	store.AssertNotCalled(t, "QueryRecords")
}

func TestGetRecordsDefaultsAbsentLimit(t *testing.T) {
	store := &MockStore{}
	store.On("QueryRecords", mock.Anything, mock.MatchedBy(func(f *models.RecordFilter) bool {
		return f.Limit == models.DefaultRecordLimit
	})).Return([]database.RecordRow{}, nil)

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/api/records")

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestGetRecordsRejectsNonIntegerLimit(t *testing.T) {
	router := newTestRouter(&MockStore{}, nil)
	w := performRequest(router, http.MethodGet, "/api/records?limit=ten")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be an integer")
}

func TestGetRecordsRejectsUnknownField(t *testing.T) {
	router := newTestRouter(&MockStore{}, nil)
	w := performRequest(router, http.MethodGet, "/api/records?fields=project_id,salary")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown field: salary")
}

func TestGetRecordsQueryFailure(t *testing.T) {
	store := &MockStore{}
	store.On("QueryRecords", mock.Anything, mock.Anything).
		Return([]database.RecordRow(nil), errors.New("relation does not exist"))

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/api/records")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRecordsGeoJSON(t *testing.T) {
	store := &MockStore{}
	store.On("QueryRecords", mock.Anything, mock.Anything).Return([]database.RecordRow{
		{"project_id": "1", "latitude": 40.7, "longitude": -73.9},
		{"project_id": "2", "latitude": nil, "longitude": nil},
	}, nil)

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/api/records/geojson")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FeatureCollection", body.Type)
	assert.Len(t, body.Features, 1)
	assert.Equal(t, []float64{-73.9, 40.7}, body.Features[0].Geometry.Coordinates)
}

func TestGetStats(t *testing.T) {
	store := &MockStore{}
	store.On("GetStats", mock.Anything).Return(&models.DatabaseStats{
		TotalRecords:    7241,
		WithCoordinates: 7100,
	}, nil)

	router := newTestRouter(store, nil)
	w := performRequest(router, http.MethodGet, "/api/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "7241")
}

func TestTriggerSync(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("TriggerSync").Return(true)

	router := newTestRouter(&MockStore{}, syncer)
	w := performRequest(router, http.MethodPost, "/api/sync")

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerSyncConflict(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("TriggerSync").Return(false)

	router := newTestRouter(&MockStore{}, syncer)
	w := performRequest(router, http.MethodPost, "/api/sync")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already running")
}

func TestTriggerSyncUnconfigured(t *testing.T) {
	router := newTestRouter(&MockStore{}, nil)
	w := performRequest(router, http.MethodPost, "/api/sync")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
