package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
)

const orderJSON = `{
	"_id": "65f1c0ffee0000000000abcd",
	"user": {"name": "Asha Rao", "email": "asha@example.com"},
	"orderItems": [
		{"product": "p1", "name": "Silk Scarf", "image": "scarf.jpg", "price": 1200.50, "quantity": 2, "variantName": "Ivory"},
		{"product": "p2", "name": "Brooch", "price": "499", "quantity": 1}
	],
	"shippingAddress": {"fullName": "Asha Rao", "addressLine1": "12 MG Road", "city": "Pune", "postalCode": "411001", "country": "IN"},
	"taxPrice": 180,
	"shippingPrice": 0,
	"totalPrice": 3080,
	"paymentMethod": "UPI_MANUAL",
	"paymentStatus": "pending",
	"orderStatus": "processing",
	"isPaid": false,
	"isDelivered": false,
	"createdAt": "2026-02-10T09:30:00Z"
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(srv.URL+"/api", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("http://store.local", 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", client.httpClient.Timeout)
	}
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@mirae.in" || body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"store-token","user":{"_id":"u1","name":"Admin","email":"admin@mirae.in","role":"admin"}}`))
	})

	token, admin, err := client.Login(context.Background(), "admin@mirae.in", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "store-token" {
		t.Fatalf("expected token, got %q", token)
	}
	if admin == nil || admin.Role != model.RoleAdmin || admin.ID != "u1" {
		t.Fatalf("unexpected admin %+v", admin)
	}

	_, _, err = client.Login(context.Background(), "admin@mirae.in", "wrong")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestProfileSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer store-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not authorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"_id":"u1","name":"Admin","email":"admin@mirae.in","role":"admin"}}`))
	})

	admin, err := client.Profile(pkgAuth.WithStoreToken(context.Background(), "store-token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Email != "admin@mirae.in" {
		t.Fatalf("unexpected admin %+v", admin)
	}

	_, err = client.Profile(context.Background())
	if !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Not authorized" {
		t.Fatalf("expected APIError with message, got %v", err)
	}
}

func TestListOrdersMapsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"orders":[` + orderJSON + `]}`))
	})

	orders, err := client.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	o := orders[0]
	if o.ID != "65f1c0ffee0000000000abcd" || o.Status != model.OrderStatusProcessing {
		t.Fatalf("unexpected order identity %+v", o)
	}
	if o.Customer == nil || o.Customer.Name != "Asha Rao" {
		t.Fatalf("unexpected customer %+v", o.Customer)
	}
	if len(o.Items) != 2 || o.Items[0].Variant.Label != "Ivory" || o.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", o.Items)
	}
	if !o.Items[1].Variant.UnitPrice.Equal(decimal.NewFromInt(499)) {
		t.Fatalf("expected string price to decode, got %s", o.Items[1].Variant.UnitPrice)
	}
	if !o.Amounts.Subtotal.Equal(decimal.NewFromInt(2900)) {
		t.Fatalf("expected subtotal from items, got %s", o.Amounts.Subtotal)
	}
	if !o.Amounts.Consistent() {
		t.Fatalf("expected consistent amounts %+v", o.Amounts)
	}
	if o.Payment.Method != model.PaymentMethodManualUPI || o.Payment.Status != model.PaymentStatusPending {
		t.Fatalf("unexpected payment %+v", o.Payment)
	}
	if o.ShippingAddress == nil || o.ShippingAddress.City != "Pune" {
		t.Fatalf("unexpected address %+v", o.ShippingAddress)
	}
	if o.CreatedAt.IsZero() {
		t.Fatal("expected created time")
	}
}

func TestOrderAcceptsEnvelopeAndBareDocument(t *testing.T) {
	bodies := map[string]string{
		"envelope": `{"order":` + orderJSON + `}`,
		"bare":     orderJSON,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/orders/65f1c0ffee0000000000abcd" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(body))
			})

			order, err := client.Order(context.Background(), "65f1c0ffee0000000000abcd")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if order.Status != model.OrderStatusProcessing {
				t.Fatalf("unexpected status %s", order.Status)
			}
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantOrder bool
	}{
		{name: "echoes order", body: `{"message":"updated","order":` + orderJSON + `}`, wantOrder: true},
		{name: "acknowledgement only", body: `{"message":"Order status updated"}`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got statusRequest
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut || r.URL.Path != "/api/orders/o1/status" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				_ = json.NewDecoder(r.Body).Decode(&got)
				_, _ = w.Write([]byte(tt.body))
			})

			order, err := client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.OrderStatus != model.OrderStatusShipped {
				t.Fatalf("expected orderStatus in body, got %q", got.OrderStatus)
			}
			if (order != nil) != tt.wantOrder {
				t.Fatalf("unexpected order presence %v", order)
			}
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusUnauthorized, domainErrors.ErrUnauthorized},
		{http.StatusForbidden, domainErrors.ErrForbidden},
		{http.StatusNotFound, domainErrors.ErrNotFound},
		{http.StatusConflict, domainErrors.ErrStatusConflict},
		{http.StatusBadGateway, domainErrors.ErrOutcomeUnknown},
		{http.StatusGatewayTimeout, domainErrors.ErrOutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInternalErrorIsPlainFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected APIError 500, got %v", err)
	}
	if errors.Is(err, domainErrors.ErrOutcomeUnknown) {
		t.Fatal("500 must not be treated as ambiguous")
	}
}

func TestUpdateTimeoutIsAmbiguous(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewHTTPClient(srv.URL, 50*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
	if !errors.Is(err, domainErrors.ErrOutcomeUnknown) {
		t.Fatalf("expected ambiguous outcome, got %v", err)
	}
}

func TestRefusedConnectionIsNotAmbiguous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client, err := NewHTTPClient(addr, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domainErrors.ErrOutcomeUnknown) {
		t.Fatalf("refused connection must not be ambiguous: %v", err)
	}
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestReadGatewayErrorsAreNotAmbiguous(t *testing.T) {
	for _, status := range []int{http.StatusBadGateway, http.StatusGatewayTimeout} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			_, err := client.Order(context.Background(), "o1")
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != status {
				t.Fatalf("expected APIError %d, got %v", status, err)
			}
			if errors.Is(err, domainErrors.ErrOutcomeUnknown) {
				t.Fatalf("read failure must not be ambiguous: %v", err)
			}
		})
	}
}

const truncatedOrderJSON = `{"order": {"_id": "o1", "orderStatus": "shipped"`

func TestUpdateWithUnreadableEchoIsAmbiguous(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(truncatedOrderJSON))
	})

	order, err := client.UpdateOrderStatus(context.Background(), "o1", model.OrderStatusShipped)
	if !errors.Is(err, domainErrors.ErrOutcomeUnknown) {
		t.Fatalf("expected ambiguous outcome, got %v", err)
	}
	if order != nil {
		t.Fatalf("expected no order, got %+v", order)
	}
}

func TestUnreadableEchoResolvedByRefetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(truncatedOrderJSON))
			return
		}
		_, _ = w.Write([]byte(`{"order": {"_id": "o1", "orderStatus": "shipped"}}`))
	})
	controller := orderstatus.NewController(NewOrderRepository(client), nil, testLogger(), orderstatus.Options{})
	order := &model.Order{ID: "o1", Status: model.OrderStatusProcessing}

	res, err := controller.RequestTransition(context.Background(), "admin", order, model.OrderStatusShipped, nil)
	if err != nil {
		t.Fatalf("expected applied update to succeed, got %v", err)
	}
	if res.Order.Status != model.OrderStatusShipped || res.Notification.Outcome != model.TransitionSucceeded {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestMarkPaidUnreadableEcho(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id": "o1", "isPaid": tr`))
	})

	order, err := client.MarkPaid(context.Background(), "o1")
	if err != nil {
		t.Fatalf("accepted payment must not fail on its echo: %v", err)
	}
	if order != nil {
		t.Fatalf("expected no order, got %+v", order)
	}
}

func TestMarkPaid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/o1/pay" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"_id":"o1","orderStatus":"confirmed","paymentMethod":"UPI_MANUAL","isPaid":true,"totalPrice":10}`))
	})

	order, err := client.MarkPaid(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.IsPaid() {
		t.Fatalf("expected paid order, got %+v", order.Payment)
	}
}

func TestFetchLogsServerErrors(t *testing.T) {
	called := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case called <- struct{}{}:
			default:
			}
		}
		return a
	}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second, slog.New(handler))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.ListOrders(context.Background()); err == nil {
		t.Fatal("expected error from server")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected error log to be written")
	}
}

func TestToModelDefaults(t *testing.T) {
	delivered := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	p := orderPayload{
		ID:          "o1",
		IsPaid:      true,
		DeliveredAt: &delivered,
		ItemsPrice:  decimal.NewNullDecimal(decimal.NewFromInt(5)),
		TotalPrice:  decimal.NewFromInt(7),
	}

	o := p.toModel()
	if o.Status != model.OrderStatusPending {
		t.Fatalf("expected pending default, got %s", o.Status)
	}
	if o.Payment.Status != model.PaymentStatusPaid {
		t.Fatalf("expected paid from isPaid, got %s", o.Payment.Status)
	}
	if o.DeliveredAt != nil {
		t.Fatal("delivered time must only be set for delivered orders")
	}
	if !o.Amounts.Subtotal.Equal(decimal.NewFromInt(5)) || o.Amounts.Consistent() {
		t.Fatalf("expected reported subtotal and inconsistent amounts, got %+v", o.Amounts)
	}
}
