package orderstatus

import "github.com/mirae-store/mirae-admin/internal/domain/model"

// ControlState describes how a status control is rendered.
type ControlState string

const (
	// ControlActive marks the order's current status; it is never interactive.
	ControlActive   ControlState = "active"
	ControlEnabled  ControlState = "enabled"
	ControlDisabled ControlState = "disabled"
	// ControlUpdating marks the target of an in-flight request.
	ControlUpdating ControlState = "updating"
)

// Control is one selectable status button.
type Control struct {
	Status               model.OrderStatus
	Label                string
	State                ControlState
	RequiresConfirmation bool
}

// Selectable reports whether the control accepts a click.
func (c Control) Selectable() bool {
	return c.State == ControlEnabled
}

// Controls computes the status controls for an order in current status. inFlight is the
// target of a pending request, or empty; while set every control is locked.
func Controls(current, inFlight model.OrderStatus) []Control {
	out := make([]Control, 0, len(statuses))
	for _, status := range statuses {
		ctrl := Control{
			Status:               status,
			Label:                Label(status),
			RequiresConfirmation: RequiresConfirmation(status),
		}
		switch {
		case status == current:
			ctrl.State = ControlActive
		case inFlight != "" && status == inFlight:
			ctrl.State = ControlUpdating
		case inFlight == "" && CanTransition(current, status):
			ctrl.State = ControlEnabled
		default:
			ctrl.State = ControlDisabled
		}
		out = append(out, ctrl)
	}
	return out
}

// Enabled returns the statuses that can currently be selected.
func Enabled(controls []Control) []model.OrderStatus {
	var out []model.OrderStatus
	for _, c := range controls {
		if c.Selectable() {
			out = append(out, c.Status)
		}
	}
	return out
}
