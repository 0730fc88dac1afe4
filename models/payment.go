package models

import "time"

// Payment is the one-to-one payment record of a booking.
type Payment struct {
	ID            int        `json:"id"`
	BookingID     int        `json:"bookingId"`
	UserID        int        `json:"userId"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId"`
	PaymentDate   time.Time  `json:"paymentDate"`
	RefundDate    *time.Time `json:"refundDate,omitempty"`
	RefundAmount  *float64   `json:"refundAmount,omitempty"`
}

// PaymentRequest creates a payment for an existing booking. TransactionID
// is optional; a synthetic one is generated when absent.
type PaymentRequest struct {
	BookingID     int    `json:"bookingId" binding:"required"`
	Method        string `json:"method" binding:"required,oneof=card paypal transfer"`
	TransactionID string `json:"transactionId"`
}
