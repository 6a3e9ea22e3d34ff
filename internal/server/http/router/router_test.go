package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
	"github.com/mirae-store/mirae-admin/internal/server/http/handlers"
	"github.com/mirae-store/mirae-admin/internal/test/facades"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var actor string
	facade := facades.AdminFacadeStub{
		OrderFacadeStub: facades.OrderFacadeStub{
			ChangeStatusFn: func(ctx context.Context, a string, req usecase.TransitionRequest) (*usecase.OrderView, orderstatus.Notification, error) {
				actor = a
				return facades.OrderFacadeStub{}.ChangeStatus(ctx, a, req)
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"email": "admin@mirae.store", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/auth/profile", "", http.StatusOK},
		{http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{http.MethodGet, "/api/orders", "", http.StatusOK},
		{http.MethodGet, "/api/orders/" + facades.SampleOrderID, "", http.StatusOK},
		{http.MethodGet, "/api/orders/" + facades.SampleOrderID + "/transitions", "", http.StatusNoContent},
		{http.MethodPut, "/api/orders/" + facades.SampleOrderID + "/status", `{"status":"confirmed"}`, http.StatusOK},
		{http.MethodPut, "/api/orders/" + facades.SampleOrderID + "/pay", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var reader io.Reader
			if tt.body != "" {
				reader = bytes.NewReader([]byte(tt.body))
			}
			req := httptest.NewRequest(tt.method, tt.path, reader)
			req.Header.Set("Authorization", "Bearer token")
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			engine.ServeHTTP(resp, req)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}

	if actor != "admin-1" {
		t.Fatalf("expected actor from session, got %q", actor)
	}
}

func TestSetupRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(facades.AdminFacadeStub{}, logger)

	for _, path := range []string{"/api/orders", "/api/dashboard", "/api/auth/profile"} {
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without session, got %d", path, resp.Code)
		}
	}
}

func TestSetupRejectsExpiredSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := facades.AdminFacadeStub{AuthFacadeStub: facades.AuthFacadeStub{ParseFn: func(string) (*model.Principal, error) {
		return nil, errExpired
	}}}
	engine := Setup(facade, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer old")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", resp.Code)
	}
}

var errExpired = fmt.Errorf("%w: session expired", pkgAuth.ErrInvalidToken)

var _ handlers.AdminFacade = facades.AdminFacadeStub{}
