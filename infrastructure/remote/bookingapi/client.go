/*
Package bookingapi reads and writes bookings through the external booking
REST API instead of the database. It implements query.Store so the booking
service is unaware of which backend serves it.

The API filters by search term, customer code, status and creation date
range, and pages by page/pageSize. Other predicates are rejected as invalid
input rather than silently widened.
*/
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"erp/config"
	"erp/domain/booking"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	bookingsPath   = "/api/bookings"
	statusStatPath = "/api/bookings/statistics/status"
	defaultTimeout = 10 * time.Second
)

// amountPaths are the unfiltered sum endpoints, keyed by metric name
var amountPaths = map[string]string{
	booking.MetricTotal.Name:    "/api/bookings/statistics/total-amount",
	booking.MetricCaptured.Name: "/api/bookings/statistics/captured-amount",
	booking.MetricRefunded.Name: "/api/bookings/statistics/refunded-amount",
}

// HTTPClient matches the subset of http.Client the store uses
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Config locates the booking API
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// FromAppConfig builds Config from the external_api section
func FromAppConfig(cfg config.ExternalAPIConfig) Config {
	return Config{
		BaseURL: cfg.BookingsBaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	}
}

// Store is a query.Store[booking.Booking, int64] backed by the booking API
type Store struct {
	base   *url.URL
	apiKey string
	client HTTPClient
	log    *zap.Logger
}

// New creates the store. A nil client gets an http.Client with cfg.Timeout.
func New(cfg Config, client HTTPClient) (*Store, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("bookingapi: base URL is required")
	}
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("bookingapi: parse base URL: %w", err)
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Store{
		base:   base,
		apiKey: cfg.APIKey,
		client: client,
		log:    logger.Named("booking-api"),
	}, nil
}

// Find sends the translated filters and page window
func (s *Store) Find(ctx context.Context, c query.Criteria[booking.Booking]) ([]booking.Booking, int64, error) {
	var q remoteQuery
	if err := translate(c.Where, &q); err != nil {
		return nil, 0, err
	}
	page, pageSize, err := window(c.Offset, c.Limit)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, q, page, pageSize)
}

func (s *Store) list(ctx context.Context, q remoteQuery, page, pageSize int) ([]booking.Booking, int64, error) {
	var body listResponse
	if err := s.call(ctx, http.MethodGet, bookingsPath, q.values(page, pageSize), nil, &body); err != nil {
		return nil, 0, err
	}

	items := make([]booking.Booking, 0, len(body.Bookings))
	for _, w := range body.Bookings {
		items = append(items, w.toDomain())
	}
	total := int64(len(items))
	if body.Pagination != nil {
		total = body.Pagination.TotalCount
	}
	return items, total, nil
}

// all pages through every match, for aggregates the API cannot filter
func (s *Store) all(ctx context.Context, where shared.Specification[booking.Booking]) ([]booking.Booking, error) {
	var q remoteQuery
	if err := translate(where, &q); err != nil {
		return nil, err
	}

	var out []booking.Booking
	for page := 1; ; page++ {
		items, total, err := s.list(ctx, q, page, query.MaxPageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || int64(len(out)) >= total {
			return out, nil
		}
	}
}

// CountBy uses the status statistics endpoint when nothing is filtered
func (s *Store) CountBy(ctx context.Context, where shared.Specification[booking.Booking], field query.Field[booking.Booking]) (map[string]int64, error) {
	if where == nil && field.Name == booking.FieldType.Name {
		counts := map[string]int64{}
		if err := s.call(ctx, http.MethodGet, statusStatPath, nil, nil, &counts); err != nil {
			return nil, err
		}
		return counts, nil
	}

	items, err := s.all(ctx, where)
	if err != nil {
		return nil, err
	}
	return query.CountBy(items, field), nil
}

// Sum uses the amount endpoints when nothing is filtered
func (s *Store) Sum(ctx context.Context, where shared.Specification[booking.Booking], metric query.Metric[booking.Booking]) (decimal.Decimal, error) {
	if path, ok := amountPaths[metric.Name]; ok && where == nil {
		var body amountResponse
		if err := s.call(ctx, http.MethodGet, path, nil, nil, &body); err != nil {
			return decimal.Zero, err
		}
		return body.Amount, nil
	}

	items, err := s.all(ctx, where)
	if err != nil {
		return decimal.Zero, err
	}
	return query.Sum(items, metric), nil
}

// Get loads one booking, 404 is shared.ErrNotFound
func (s *Store) Get(ctx context.Context, no int64) (booking.Booking, error) {
	var body wireBooking
	if err := s.call(ctx, http.MethodGet, bookingPath(no), nil, nil, &body); err != nil {
		return booking.Booking{}, err
	}
	return body.toDomain(), nil
}

// Insert posts the booking and returns it as the API stored it
func (s *Store) Insert(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	var body wireBooking
	if err := s.call(ctx, http.MethodPost, bookingsPath, nil, fromDomain(b), &body); err != nil {
		return booking.Booking{}, err
	}
	return body.toDomain(), nil
}

// Update replaces the booking, 404 is shared.ErrNotFound
func (s *Store) Update(ctx context.Context, b booking.Booking) error {
	return s.call(ctx, http.MethodPut, bookingPath(b.No), nil, fromDomain(b), nil)
}

// Delete removes the booking, 404 is shared.ErrNotFound
func (s *Store) Delete(ctx context.Context, no int64) error {
	return s.call(ctx, http.MethodDelete, bookingPath(no), nil, nil, nil)
}

func bookingPath(no int64) string {
	return bookingsPath + "/" + strconv.FormatInt(no, 10)
}

// call performs one request. out may be nil when the body is not needed.
func (s *Store) call(ctx context.Context, method, path string, params url.Values, in, out any) error {
	req, err := s.newRequest(ctx, method, path, params, in)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return shared.NewTransientError(booking.EntityName, fmt.Errorf("bookingapi: %s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	s.log.Debug("Booking API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bookingapi: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (s *Store) newRequest(ctx context.Context, method, path string, params url.Values, in any) (*http.Request, error) {
	ref := &url.URL{Path: strings.TrimSuffix(s.base.Path, "/") + path}
	if len(params) > 0 {
		ref.RawQuery = params.Encode()
	}
	target := s.base.ResolveReference(ref)

	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return nil, fmt.Errorf("bookingapi: encode payload: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("bookingapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return req, nil
}

// errorFromResponse maps an HTTP failure onto the domain error taxonomy
func (s *Store) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	message := strings.TrimSpace(string(raw))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		message = payload.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	cause := fmt.Errorf("bookingapi: backend error (%d): %s", resp.StatusCode, message)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return shared.NewNotFoundError(booking.EntityName)
	case resp.StatusCode == http.StatusConflict:
		return shared.NewConflictError(booking.EntityName, message, cause)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return shared.NewValidationError(booking.EntityName, "", message)
	case resp.StatusCode == http.StatusRequestTimeout ||
		resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode >= 500:
		return shared.NewTransientError(booking.EntityName, cause)
	default:
		return cause
	}
}
