package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

// Client exposes the store API operations used by the dashboard.
type Client interface {
	Login(ctx context.Context, email, password string) (string, *model.Admin, error)
	Profile(ctx context.Context) (*model.Admin, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	MarkPaid(ctx context.Context, id string) (*model.Order, error)
}

// HTTPClient implements Client via the store's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a store API client. A non-positive timeout falls back to the default.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse store api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("store api url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Login exchanges credentials for a store token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			return "", nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidCredentials, apiErr.Message)
		}
		return "", nil, err
	}
	if resp.Token == "" {
		return "", nil, fmt.Errorf("store api: login response without token")
	}
	var admin *model.Admin
	if resp.User != nil {
		admin = resp.User.toModel()
	}
	return resp.Token, admin, nil
}

// Profile returns the user owning the context token.
func (c *HTTPClient) Profile(ctx context.Context) (*model.Admin, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("store api: profile response without user")
	}
	return resp.User.toModel(), nil
}

// ListOrders returns every order visible to the token.
func (c *HTTPClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(resp.Orders))
	for _, p := range resp.Orders {
		orders = append(orders, p.toModel())
	}
	return orders, nil
}

// Order fetches a single order.
func (c *HTTPClient) Order(ctx context.Context, id string) (*model.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path.Join("/orders", url.PathEscape(id)), nil, &raw); err != nil {
		return nil, err
	}
	order, err := decodeOrder(raw)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// UpdateOrderStatus asks the store to move the order into status. The returned order is
// nil when the store acknowledged without echoing the order back.
func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var raw json.RawMessage
	endpoint := path.Join("/orders", url.PathEscape(id), "status")
	if err := c.do(ctx, http.MethodPut, endpoint, statusRequest{OrderStatus: status}, &raw); err != nil {
		return nil, err
	}
	order, err := decodeOrder(raw)
	if err != nil {
		// The store accepted the request; only its echo is unreadable.
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrOutcomeUnknown, err)
	}
	return order, nil
}

// MarkPaid settles a manually paid order.
func (c *HTTPClient) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	var raw json.RawMessage
	endpoint := path.Join("/orders", url.PathEscape(id), "pay")
	if err := c.do(ctx, http.MethodPut, endpoint, struct{}{}, &raw); err != nil {
		return nil, err
	}
	order, err := decodeOrder(raw)
	if err != nil {
		c.logger.Warn("unreadable mark paid response",
			slog.String("order", id),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return order, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := pkgAuth.StoreToken(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if method != http.MethodGet && ambiguous(err) {
			return fmt.Errorf("%w: %s %s: %v", domainErrors.ErrOutcomeUnknown, method, endpoint, err)
		}
		return fmt.Errorf("%w: %s %s: %w", domainErrors.ErrStoreUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if method != http.MethodGet && resp.StatusCode < http.StatusBadRequest {
			return fmt.Errorf("%w: read response: %v", domainErrors.ErrOutcomeUnknown, err)
		}
		return fmt.Errorf("%w: read response: %w", domainErrors.ErrStoreUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg messageResponse
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Error("store api request failed",
				slog.String("method", method),
				slog.String("path", endpoint),
				slog.Int("status", resp.StatusCode),
				slog.String("body", string(data)),
			)
		}
		if method != http.MethodGet && (resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusGatewayTimeout) {
			// A proxy may have timed out after forwarding the mutation.
			return fmt.Errorf("%w: %w", domainErrors.ErrOutcomeUnknown, apiErr)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode store api response: %w", err)
	}
	return nil
}

// decodeOrder accepts {"order": {...}}, a bare order document, or a body without an order.
func decodeOrder(raw json.RawMessage) (*model.Order, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var envelope struct {
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode store api order: %w", err)
	}
	doc := raw
	if len(envelope.Order) > 0 && string(envelope.Order) != "null" {
		doc = envelope.Order
	}
	var p orderPayload
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode store api order: %w", err)
	}
	if p.ID == "" {
		return nil, nil
	}
	order := p.toModel()
	return &order, nil
}

// ambiguous reports whether a transport error may have happened after the request was sent.
func ambiguous(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return false
	}
	var dnsErr *net.DNSError
	return !errors.As(err, &dnsErr)
}
