package dto

import "time"

// StatusChangeRequest asks for an order to move to Status.
type StatusChangeRequest struct {
	Status         string `json:"status"`
	Confirm        bool   `json:"confirm"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

// NotificationResponse is the user-facing outcome of a status change.
type NotificationResponse struct {
	AttemptID string    `json:"attempt_id"`
	Level     string    `json:"level"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// StatusChangeResponse carries the updated order and its notification.
type StatusChangeResponse struct {
	Order        OrderResponse        `json:"order"`
	Notification NotificationResponse `json:"notification"`
}

// TransitionResponse describes a journal entry.
type TransitionResponse struct {
	ID          string     `json:"id"`
	AdminID     string     `json:"admin_id"`
	From        string     `json:"from"`
	To          string     `json:"to"`
	Outcome     string     `json:"outcome"`
	Message     string     `json:"message,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
