package orderstatus

import (
	"sync"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// Registry tracks orders with a transition request in flight.
type Registry struct {
	mu       sync.Mutex
	inFlight map[string]model.OrderStatus
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{inFlight: make(map[string]model.OrderStatus)}
}

// TryAcquire marks orderID as busy moving to target. It returns false when another
// request for the same order is already in flight.
func (r *Registry) TryAcquire(orderID string, target model.OrderStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[orderID]; busy {
		return false
	}
	r.inFlight[orderID] = target
	return true
}

// Release clears the in-flight mark for orderID.
func (r *Registry) Release(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, orderID)
}

// InFlight returns the target of the pending request for orderID, if any.
func (r *Registry) InFlight(orderID string) (model.OrderStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.inFlight[orderID]
	return target, ok
}
