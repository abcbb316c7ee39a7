// Package source provides table providers for the chart service: a Google
// Sheets visualization endpoint, a local xlsx workbook and a TTL cache that
// decorates either.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

var (
	// ErrPayload indicates a response that is not a visualization payload.
	ErrPayload = errors.New("malformed sheet payload")
	// ErrRemote indicates the endpoint answered with an error payload.
	ErrRemote = errors.New("remote sheet error")
	// ErrSheetNotFound indicates the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// maxPayloadBytes bounds how much of a response body is read.
const maxPayloadBytes = 64 << 20

var setResponse = regexp.MustCompile(`google\.visualization\.Query\.setResponse\(([\s\S]*)\);?$`)

// HTTPError represents a non-2xx answer from the endpoint.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// SheetsConfig configures a Sheets client.
type SheetsConfig struct {
	SpreadsheetID string
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	MaxRetries    int

	// RateLimit is the number of requests per second; Burst the bucket size.
	RateLimit float64
	Burst     int

	// Transport overrides the HTTP transport. It is always wrapped for
	// transparent response decompression.
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// DefaultSheetsConfig returns a configuration for the given spreadsheet.
func DefaultSheetsConfig(spreadsheetID string) SheetsConfig {
	return SheetsConfig{
		SpreadsheetID: spreadsheetID,
		BaseURL:       "https://docs.google.com",
		UserAgent:     "acedash/1.0",
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RateLimit:     5,
		Burst:         4,
	}
}

// Sheets fetches sheets of one spreadsheet through the Google visualization
// query endpoint. It is safe for concurrent use.
type Sheets struct {
	cfg     SheetsConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewSheets creates a Sheets client. Zero fields of cfg take the defaults.
func NewSheets(cfg SheetsConfig) *Sheets {
	def := DefaultSheetsConfig(cfg.SpreadsheetID)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = def.RateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Sheets{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: gzhttp.Transport(transport),
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		log:     log,
	}
}

// URL returns the query URL of a sheet.
func (s *Sheets) URL(sheet string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:json&sheet=%s",
		s.cfg.BaseURL, url.PathEscape(s.cfg.SpreadsheetID), url.QueryEscape(sheet))
}

// FetchTable downloads and decodes one sheet. Network failures, 429 and
// 5xx answers are retried with exponential backoff.
func (s *Sheets) FetchTable(ctx context.Context, name string) (*models.Table, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
			s.log.Debug("retrying sheet fetch",
				zap.String("sheet", name),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, err := s.doOnce(ctx, name)
		if err == nil {
			return DecodeTable(name, body)
		}
		lastErr = err
		if !isRetryable(ctx, err) {
			break
		}
	}
	return nil, lastErr
}

func (s *Sheets) doOnce(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	case resp.StatusCode >= 400:
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

type payload struct {
	Status string `json:"status"`
	Errors []struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"errors"`
	Table struct {
		Cols []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*struct {
				V any     `json:"v"`
				F *string `json:"f"`
			} `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

// DecodeTable parses a visualization response body into a table.
// Headers are column labels, or ids when the label is empty. A cell takes
// its raw value, else its formatted value, else the empty string.
func DecodeTable(name string, body []byte) (*models.Table, error) {
	m := setResponse.FindSubmatch([]byte(strings.TrimSpace(string(body))))
	if m == nil {
		return nil, fmt.Errorf("%w: no response wrapper in sheet %q", ErrPayload, name)
	}

	var p payload
	if err := json.Unmarshal(m[1], &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if p.Status == "error" {
		msg := "unknown error"
		if len(p.Errors) > 0 && p.Errors[0].Message != "" {
			msg = p.Errors[0].Message
		}
		return nil, fmt.Errorf("%w: %s", ErrRemote, msg)
	}

	columns := make([]string, len(p.Table.Cols))
	for i, c := range p.Table.Cols {
		columns[i] = c.Label
		if columns[i] == "" {
			columns[i] = c.ID
		}
	}

	rows := make([][]any, 0, len(p.Table.Rows))
	for _, r := range p.Table.Rows {
		values := make([]any, max(len(columns), len(r.C)))
		for i := range values {
			values[i] = ""
		}
		for i, cell := range r.C {
			switch {
			case cell == nil:
			case cell.V != nil:
				values[i] = cell.V
			case cell.F != nil:
				values[i] = *cell.F
			}
		}
		rows = append(rows, values)
	}
	return models.NewTable(name, columns, rows), nil
}
