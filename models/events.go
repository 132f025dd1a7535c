package models

import "time"

// PaymentEvent is the payload published to SNS after a payment workflow
// finishes. Publishing is best-effort and never fails the request.
type PaymentEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	OrderID   string    `json:"order_id,omitempty"`
	Customer  string    `json:"customer_id,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
