// Package orderstatus owns the order lifecycle state machine used by the dashboard:
// which statuses may follow which, what the status controls look like for an order, and
// how a single transition request is carried out against the store.
package orderstatus

import (
	"fmt"
	"strings"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// statuses lists every lifecycle stage in display order.
var statuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusConfirmed,
	model.OrderStatusProcessing,
	model.OrderStatusShipped,
	model.OrderStatusOutForDelivery,
	model.OrderStatusDelivered,
	model.OrderStatusCancelled,
}

var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:      {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing:     {model.OrderStatusShipped},
	model.OrderStatusShipped:        {model.OrderStatusOutForDelivery},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered},
	model.OrderStatusDelivered:      {},
	model.OrderStatusCancelled:      {},
}

// Statuses returns all known statuses in display order.
func Statuses() []model.OrderStatus {
	out := make([]model.OrderStatus, len(statuses))
	copy(out, statuses)
	return out
}

// Parse converts raw input into a known status.
func Parse(raw string) (model.OrderStatus, error) {
	status := model.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidStatus, raw)
	}
	return status, nil
}

// AllowedNext returns statuses reachable from current in one step.
func AllowedNext(current model.OrderStatus) []model.OrderStatus {
	next := transitions[current]
	out := make([]model.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reachable reports whether to can follow from in one or more steps without passing
// through any status in avoid.
func Reachable(from, to model.OrderStatus, avoid ...model.OrderStatus) bool {
	seen := map[model.OrderStatus]bool{from: true}
	for _, s := range avoid {
		seen[s] = true
	}
	queue := []model.OrderStatus{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range transitions[current] {
			if seen[next] {
				continue
			}
			if next == to {
				return true
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status model.OrderStatus) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// RequiresConfirmation reports whether moving into target must be confirmed first.
func RequiresConfirmation(target model.OrderStatus) bool {
	return target == model.OrderStatusCancelled
}

// Validate checks a transition request without side effects.
func Validate(current, target model.OrderStatus) error {
	if _, ok := transitions[target]; !ok {
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidStatus, target)
	}
	if current == target {
		return fmt.Errorf("%w: %s", domainErrors.ErrAlreadyInStatus, target)
	}
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: %s -> %s", domainErrors.ErrIllegalTransition, current, target)
	}
	return nil
}

// Label renders status for humans, e.g. "out for delivery".
func Label(status model.OrderStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}
