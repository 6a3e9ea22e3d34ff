package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// ReconcileFacadeStub mimics worker interactions with the admin facade.
type ReconcileFacadeStub struct {
	Batches     [][]model.TransitionRecord
	PendingFn   func(context.Context, int) ([]model.TransitionRecord, error)
	ReconcileFn func(context.Context, model.TransitionRecord) (model.TransitionOutcome, error)
	Handled     []model.TransitionRecord
	mu          sync.Mutex
	pendingCall int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcileFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcileFacadeStub) Unlock() { s.mu.Unlock() }

// PendingTransitions returns batches from configured queue.
func (s *ReconcileFacadeStub) PendingTransitions(ctx context.Context, limit int) ([]model.TransitionRecord, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.pendingCall, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcileTransition records handled entries.
func (s *ReconcileFacadeStub) ReconcileTransition(ctx context.Context, rec model.TransitionRecord) (model.TransitionOutcome, error) {
	s.mu.Lock()
	s.Handled = append(s.Handled, rec)
	s.mu.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, rec)
	}
	return model.TransitionReconciled, nil
}

// HandledCount returns the number of reconcile calls.
func (s *ReconcileFacadeStub) HandledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Handled)
}
