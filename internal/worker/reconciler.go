package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// ReconcileFacade exposes the subset of application functionality required by the worker.
type ReconcileFacade interface {
	PendingTransitions(ctx context.Context, limit int) ([]model.TransitionRecord, error)
	ReconcileTransition(ctx context.Context, rec model.TransitionRecord) (model.TransitionOutcome, error)
}

// Reconciler polls the journal for transitions with an unknown outcome and settles them
// against the store concurrently.
type Reconciler struct {
	facade       ReconcileFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs     chan model.TransitionRecord
	inFlight map[uuid.UUID]struct{}
	flightMu sync.Mutex
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewReconciler constructs the reconciler worker pool.
func NewReconciler(facade ReconcileFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.TransitionRecord, batchSize*workers),
		inFlight:     make(map[uuid.UUID]struct{}),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	records, err := r.facade.PendingTransitions(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch unresolved transitions failed", slog.String("error", err.Error()))
		return
	}
	for _, rec := range records {
		if !r.claim(rec.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			r.release(rec.ID)
			return
		case r.jobs <- rec:
		}
	}
}

// claim marks id as queued. A record already queued or being handled is skipped.
func (r *Reconciler) claim(id uuid.UUID) bool {
	r.flightMu.Lock()
	defer r.flightMu.Unlock()
	if _, ok := r.inFlight[id]; ok {
		return false
	}
	r.inFlight[id] = struct{}{}
	return true
}

func (r *Reconciler) release(id uuid.UUID) {
	r.flightMu.Lock()
	delete(r.inFlight, id)
	r.flightMu.Unlock()
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleRecord(ctx, rec)
			r.release(rec.ID)
		}
	}
}

func (r *Reconciler) handleRecord(ctx context.Context, rec model.TransitionRecord) {
	outcome, err := r.facade.ReconcileTransition(ctx, rec)
	if errors.Is(err, domainErrors.ErrAlreadyResolved) {
		r.logger.Info("transition already resolved",
			slog.String("attempt", rec.ID.String()),
			slog.String("order", rec.OrderID),
		)
		return
	}
	if err != nil {
		r.logger.Warn("reconcile transition failed",
			slog.String("attempt", rec.ID.String()),
			slog.String("order", rec.OrderID),
			slog.String("error", err.Error()),
		)
		if outcome == "" {
			return
		}
	}
	r.logger.Info("transition reconciled",
		slog.String("attempt", rec.ID.String()),
		slog.String("order", rec.OrderID),
		slog.String("to", string(rec.To)),
		slog.String("outcome", string(outcome)),
	)
}
