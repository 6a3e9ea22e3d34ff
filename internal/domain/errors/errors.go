package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrStoreUnavailable   = errors.New("store api unavailable")

	// Order status transitions.
	ErrAlreadyInStatus      = errors.New("order already in requested status")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrTransitionInProgress = errors.New("status transition already in progress")
	ErrConfirmationRequired = errors.New("transition requires confirmation")
	ErrStaleStatus          = errors.New("order status changed since it was viewed")
	ErrStatusConflict       = errors.New("order status rejected by store")
	ErrOutcomeUnknown       = errors.New("status update outcome unknown")
	ErrUpdateNotApplied     = errors.New("status update not applied")
	ErrAlreadyResolved      = errors.New("transition already resolved")

	// Payments.
	ErrAlreadyPaid      = errors.New("order already paid")
	ErrNotManualPayment = errors.New("order payment is not manually settled")
)
