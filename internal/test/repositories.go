package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// OrderRepositoryStub keeps orders in memory and allows tests to override behaviour.
type OrderRepositoryStub struct {
	ListFn         func(context.Context) ([]model.Order, error)
	GetFn          func(context.Context, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	MarkPaidFn     func(context.Context, string) (*model.Order, error)

	Orders        []model.Order
	UpdateCalls   []OrderUpdateCall
	MarkPaidCalls []string
	mu            sync.Mutex
}

// List returns configured orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.Orders))
	copy(out, s.Orders)
	return out, nil
}

// Get returns a copy of the matching order.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus records the call and applies it to the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: id, Status: status})
	s.mu.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkPaid records the call and settles the stored order.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	s.MarkPaidCalls = append(s.MarkPaidCalls, id)
	s.mu.Unlock()
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			now := time.Now()
			s.Orders[i].Payment.Status = model.PaymentStatusPaid
			s.Orders[i].Payment.PaidAt = &now
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Calls returns a snapshot of UpdateStatus invocations.
func (s *OrderRepositoryStub) Calls() []OrderUpdateCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OrderUpdateCall(nil), s.UpdateCalls...)
}

// ResolveCall stores arguments of TransitionJournal.Resolve.
type ResolveCall struct {
	ID         uuid.UUID
	Outcome    model.TransitionOutcome
	Message    string
	ResolvedAt time.Time
}

// TransitionJournalStub keeps journal entries in memory.
type TransitionJournalStub struct {
	RecordErr    error
	ResolveErr   error
	UnresolvedFn func(context.Context, int) ([]model.TransitionRecord, error)

	Records  []model.TransitionRecord
	Resolved []ResolveCall
	mu       sync.Mutex
}

// Record appends rec unless RecordErr is set.
func (s *TransitionJournalStub) Record(_ context.Context, rec model.TransitionRecord) error {
	if s.RecordErr != nil {
		return s.RecordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, rec)
	return nil
}

// Resolve records the call and settles the stored entry if its outcome is still unknown.
func (s *TransitionJournalStub) Resolve(_ context.Context, id uuid.UUID, outcome model.TransitionOutcome, message string, resolvedAt time.Time) error {
	if s.ResolveErr != nil {
		return s.ResolveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resolved = append(s.Resolved, ResolveCall{ID: id, Outcome: outcome, Message: message, ResolvedAt: resolvedAt})
	for i := range s.Records {
		if s.Records[i].ID == id {
			if s.Records[i].Outcome != model.TransitionUnknown {
				return domainErrors.ErrAlreadyResolved
			}
			s.Records[i].Outcome = outcome
			s.Records[i].Message = message
			at := resolvedAt
			s.Records[i].ResolvedAt = &at
			return nil
		}
	}
	return nil
}

// ListByOrder returns entries for orderID in insertion order.
func (s *TransitionJournalStub) ListByOrder(_ context.Context, orderID string) ([]model.TransitionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TransitionRecord
	for _, r := range s.Records {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Unresolved returns entries with unknown outcome.
func (s *TransitionJournalStub) Unresolved(ctx context.Context, limit int) ([]model.TransitionRecord, error) {
	if s.UnresolvedFn != nil {
		return s.UnresolvedFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TransitionRecord
	for _, r := range s.Records {
		if r.Outcome == model.TransitionUnknown && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

// Snapshot returns a copy of all recorded entries.
func (s *TransitionJournalStub) Snapshot() []model.TransitionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TransitionRecord(nil), s.Records...)
}

// PublisherStub captures published status changes.
type PublisherStub struct {
	Err     error
	Changes []model.StatusChange
	Closed  bool
	mu      sync.Mutex
}

// PublishStatusChanged records change or returns Err.
func (s *PublisherStub) PublishStatusChanged(_ context.Context, change model.StatusChange) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Changes = append(s.Changes, change)
	return nil
}

// Close marks the stub closed.
func (s *PublisherStub) Close() error {
	s.Closed = true
	return nil
}

// Published returns a snapshot of captured changes.
func (s *PublisherStub) Published() []model.StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusChange(nil), s.Changes...)
}
