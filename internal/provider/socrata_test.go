package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/Becky0713/NOAH/config"
)

func newTestSocrata(t *testing.T, serverURL string) *Socrata {
	t.Helper()

	cfg := &config.Config{}
	cfg.Socrata.BaseURL = serverURL
	cfg.Socrata.DatasetID = "hg8x-zxpr"
	cfg.Socrata.AppToken = "test-token"
	cfg.Socrata.TimeoutSeconds = 5
	cfg.Sync.MaxRetries = 2
	cfg.Sync.RetryDelay = 0

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewSocrata(cfg, logger)
}

func TestSocrataFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resource/hg8x-zxpr.json", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("$limit"))
		assert.Equal(t, "100", r.URL.Query().Get("$offset"))
		assert.Equal(t, "project_id", r.URL.Query().Get("$order"))
		assert.Equal(t, "test-token", r.Header.Get("X-App-Token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"project_id": "44218", "borough": "Bronx"}]`))
	}))
	defer server.Close()

	s := newTestSocrata(t, server.URL)
	records, err := s.FetchPage(context.Background(), 100, 50)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "44218", records[0]["project_id"])
}

func TestSocrataFetchPageEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	s := newTestSocrata(t, server.URL)
	records, err := s.FetchPage(context.Background(), 99999, 50)

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestSocrataRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"project_id": "1"}]`))
	}))
	defer server.Close()

	s := newTestSocrata(t, server.URL)
	records, err := s.FetchPage(context.Background(), 0, 10)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSocrataGivesUpAfterRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := newTestSocrata(t, server.URL)
	_, err := s.FetchPage(context.Background(), 0, 10)

	assert.Error(t, err)
	// first attempt plus two retries
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSocrataDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	s := newTestSocrata(t, server.URL)
	_, err := s.FetchPage(context.Background(), 0, 10)

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSocrataOmitsTokenHeaderWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-App-Token"]
		assert.False(t, present)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Socrata.BaseURL = server.URL
	cfg.Socrata.DatasetID = "hg8x-zxpr"
	cfg.Socrata.TimeoutSeconds = 5
	cfg.Sync.MaxRetries = 1

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	s := NewSocrata(cfg, logger)

	_, err := s.FetchPage(context.Background(), 0, 10)
	assert.NoError(t, err)
}
