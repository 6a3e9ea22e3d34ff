package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mirae-store/mirae-admin/internal/config"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	testhelpers "github.com/mirae-store/mirae-admin/internal/test"
	"github.com/mirae-store/mirae-admin/internal/worker"
)

func newTestReconciler(facade worker.ReconcileFacade) *worker.Reconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewReconciler(facade, 10*time.Millisecond, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewReconcilerUsesConfig(t *testing.T) {
	facade, _ := newFacade("service-token")
	proc := newReconciler(workerParams{
		Facade: facade,
		Config: &config.Config{ReconcileInterval: 15 * time.Second, ReconcileBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if proc == nil {
		t.Fatal("expected reconciler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	facade, journal := newFacade("service-token")

	var polls int32
	journal.UnresolvedFn = func(context.Context, int) ([]model.TransitionRecord, error) {
		atomic.AddInt32(&polls, 1)
		return nil, nil
	}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Facade:     facade,
		Worker:     newTestReconciler(facade),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	// The reconciler must outlive the start context.
	cancel()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&polls) < 2 {
		select {
		case <-deadline:
			t.Fatal("expected reconciler to keep polling after start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleReconcilerDisabled(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	facade, journal := newFacade("")

	var polls int32
	journal.UnresolvedFn = func(context.Context, int) ([]model.TransitionRecord, error) {
		atomic.AddInt32(&polls, 1)
		return nil, nil
	}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     logger,
		Server:     server,
		Facade:     facade,
		Worker:     newTestReconciler(facade),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("on stop failed: %v", err)
	}
	if atomic.LoadInt32(&polls) != 0 {
		t.Fatalf("disabled reconciler must not poll, got %d polls", polls)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "bad addr"}
	facade, _ := newFacade("")

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Facade:     facade,
		Worker:     newTestReconciler(facade),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
