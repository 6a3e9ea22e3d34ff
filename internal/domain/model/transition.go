package model

import (
	"time"

	"github.com/google/uuid"
)

// TransitionOutcome is the recorded result of a status transition attempt.
type TransitionOutcome string

const (
	TransitionSucceeded  TransitionOutcome = "succeeded"
	TransitionFailed     TransitionOutcome = "failed"
	TransitionDeclined   TransitionOutcome = "declined"
	TransitionUnknown    TransitionOutcome = "unknown"
	TransitionReconciled TransitionOutcome = "reconciled"
	TransitionReverted   TransitionOutcome = "reverted"
)

// TransitionRecord is a journal entry for one transition attempt.
type TransitionRecord struct {
	ID          uuid.UUID
	OrderID     string
	AdminID     string
	From        OrderStatus
	To          OrderStatus
	Outcome     TransitionOutcome
	Message     string
	RequestedAt time.Time
	ResolvedAt  *time.Time
}

// StatusChange is an applied status transition announced to other systems.
type StatusChange struct {
	AttemptID  uuid.UUID
	OrderID    string
	AdminID    string
	From       OrderStatus
	To         OrderStatus
	Outcome    TransitionOutcome
	OccurredAt time.Time
}
