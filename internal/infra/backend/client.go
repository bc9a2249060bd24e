package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/customer"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/metrics"
	"rental-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyVehicles  = "booking-engine:vehicles"
	cacheKeyCustomers = "booking-engine:customers"

	maxErrorBody = 4 << 10
)

// Client talks to the rental backend REST API. The HTTP client and the token
// source are injected so callers control transport and credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	metrics    *metrics.Metrics

	redis    *redis.Client
	cacheTTL time.Duration
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

// UseRedisCache enables caching of the vehicle and customer lookup tables.
// Bookings are never cached.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

func (c *Client) UseMetrics(m *metrics.Metrics) {
	c.metrics = m
}

func (c *Client) ListVehicles(ctx context.Context) ([]*vehicle.Vehicle, error) {
	var dtos []vehicleDTO
	if !c.readCache(ctx, cacheKeyVehicles, &dtos) {
		if err := c.doJSON(ctx, "list_vehicles", http.MethodGet, "/api/vehicles", nil, nil, &dtos); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKeyVehicles, dtos)
	}

	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, d := range dtos {
		v, err := d.toDomain()
		if err != nil {
			c.logger.Warn("Skipping malformed vehicle from backend", "vehicle_id", d.ID, "error", err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (c *Client) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	var dto vehicleDTO
	if err := c.doJSON(ctx, "get_vehicle", http.MethodGet, "/api/vehicles/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		return nil, err
	}
	v, err := dto.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindRejected, "malformed vehicle from backend", err)
	}
	return v, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	var dtos []customerDTO
	if !c.readCache(ctx, cacheKeyCustomers, &dtos) {
		if err := c.doJSON(ctx, "list_customers", http.MethodGet, "/api/customers", nil, nil, &dtos); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKeyCustomers, dtos)
	}

	customers := make([]*customer.Customer, 0, len(dtos))
	for _, d := range dtos {
		cu, err := d.toDomain()
		if err != nil {
			c.logger.Warn("Skipping malformed customer from backend", "customer_id", d.ID, "error", err)
			continue
		}
		customers = append(customers, cu)
	}
	return customers, nil
}

// ListVehicleBookings returns a fresh snapshot of the vehicle's bookings.
func (c *Client) ListVehicleBookings(ctx context.Context, vehicleID string) ([]booking.Interval, error) {
	var dtos []bookingDTO
	path := "/api/bookings?vehicleId=" + url.QueryEscape(vehicleID)
	if err := c.doJSON(ctx, "list_bookings", http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}

	intervals := make([]booking.Interval, 0, len(dtos))
	for _, d := range dtos {
		iv, err := d.toDomain()
		if err != nil {
			c.logger.Warn("Skipping malformed booking from backend", "booking_id", d.ID, "error", err)
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// CreateBooking submits a booking. A slot taken concurrently by another client
// comes back as a KindConflict error.
func (c *Client) CreateBooking(ctx context.Context, b shared.NewBooking, idempotencyKey string) (*shared.CreatedBooking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var created createdBookingDTO
	if err := c.doJSON(ctx, "create_booking", http.MethodPost, "/api/bookings", newCreateBookingDTO(b), headers, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, infra.WrapRepoErr(c.logger, infra.KindUnavailable, "backend returned booking without id", nil)
	}
	c.invalidate(ctx, cacheKeyVehicles)

	result := created.toShared(b.Status)
	return &result, nil
}

// DownloadContract streams the booking contract into sink.
func (c *Client) DownloadContract(ctx context.Context, bookingID string, sink shared.BlobSink) error {
	path := "/api/bookings/" + url.PathEscape(bookingID) + "/contract"
	resp, err := c.send(ctx, "download_contract", http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	filename := contractFilename(resp.Header.Get("Content-Disposition"), bookingID)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	if err := sink.SaveBlob(filename, contentType, resp.Body); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindUnavailable, "failed to save contract", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body any, headers map[string]string, out any) error {
	resp, err := c.send(ctx, op, method, path, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindUnavailable, "failed to decode backend response", err)
	}
	return nil
}

// send performs the request and maps non-2xx statuses to repository errors.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, op, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindRejected, "failed to encode backend request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindUnavailable, "failed to build backend request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, infra.WrapRepoErr(c.logger, infra.KindUnauthorized, "no credentials for backend", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "transport_error", start)
		return nil, infra.WrapRepoErr(c.logger, infra.KindUnavailable, op+" request failed", err)
	}
	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var e errorDTO
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(raw, &e) != nil || e.text() == "" {
		e.Message = strings.TrimSpace(string(raw))
	}
	cause := fmt.Errorf("http %d: %s", resp.StatusCode, e.text())

	return nil, infra.WrapRepoErr(c.logger, kindForStatus(resp.StatusCode), op+" rejected by backend", cause)
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveBackendRequest(op, status, time.Since(start).Seconds())
}

func kindForStatus(status int) infra.RepositoryErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return infra.KindUnauthorized
	case status == http.StatusNotFound:
		return infra.KindNotFound
	case status == http.StatusConflict:
		return infra.KindConflict
	case status >= 500:
		return infra.KindUnavailable
	default:
		return infra.KindRejected
	}
}

func contractFilename(disposition, bookingID string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	return "contract-" + bookingID + ".pdf"
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to write backend cache", "key", key, "error", err)
	}
}

func (c *Client) invalidate(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Failed to invalidate backend cache", "key", key, "error", err)
	}
}
