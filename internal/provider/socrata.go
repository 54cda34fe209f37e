package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Becky0713/NOAH/config"
)

const socrataUserAgent = "NOAH Housing Hub/1.0"

// Socrata fetches pages from the NYC Open Data Socrata API.
type Socrata struct {
	baseURL    string
	datasetID  string
	appToken   string
	client     *http.Client
	logger     *logrus.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewSocrata creates a Socrata provider from the application configuration.
func NewSocrata(cfg *config.Config, logger *logrus.Logger) *Socrata {
	return &Socrata{
		baseURL:    cfg.Socrata.BaseURL,
		datasetID:  cfg.Socrata.DatasetID,
		appToken:   cfg.Socrata.AppToken,
		client:     &http.Client{Timeout: cfg.HTTPTimeout()},
		logger:     logger,
		maxRetries: cfg.Sync.MaxRetries,
		retryDelay: cfg.SyncRetryDelay(),
	}
}

func (s *Socrata) Name() string {
	return "socrata"
}

func (s *Socrata) datasetURL() string {
	return fmt.Sprintf("%s/resource/%s.json", s.baseURL, s.datasetID)
}

// FetchPage requests one page of records ordered by project_id. Transient
// failures (connection errors, 429, 5xx) are retried with a fixed delay;
// anything else fails immediately.
func (s *Socrata) FetchPage(ctx context.Context, offset, limit int) ([]Record, error) {
	params := url.Values{
		"$limit":  []string{strconv.Itoa(limit)},
		"$offset": []string{strconv.Itoa(offset)},
		"$order":  []string{"project_id"},
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.WithFields(logrus.Fields{
				"offset":  offset,
				"attempt": attempt,
			}).Warn("Retrying Socrata page fetch")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		records, retryable, err := s.fetchOnce(ctx, params)
		if err == nil {
			return records, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("socrata page fetch failed after %d attempts: %w", s.maxRetries+1, lastErr)
}

func (s *Socrata) fetchOnce(ctx context.Context, params url.Values) (records []Record, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.datasetURL(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", socrataUserAgent)
	if s.appToken != "" {
		req.Header.Set("X-App-Token", s.appToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("socrata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("socrata returned status %d: %s", resp.StatusCode, body)
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, false, fmt.Errorf("failed to parse socrata response: %w", err)
	}
	return records, false, nil
}
