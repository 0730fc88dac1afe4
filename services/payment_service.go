package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"railmate/database"
	"railmate/models"
)

// CreatePayment settles a pending booking. Each booking takes exactly one
// payment; a second attempt is rejected rather than charged twice. The
// booking's payment status flips to completed in the same transaction.
func CreatePayment(userID int, req models.PaymentRequest) (*models.Payment, error) {
	db := database.GetDB()
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var ownerID int
	var bookingStatus string
	var totalPrice float64
	err = tx.QueryRow(`
		SELECT user_id, status, total_price FROM bookings WHERE id = $1 FOR UPDATE
	`, req.BookingID).Scan(&ownerID, &bookingStatus, &totalPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if ownerID != userID {
		return nil, ErrForbidden
	}
	if bookingStatus == models.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM payments WHERE booking_id = $1)
	`, req.BookingID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePayment
	}

	txnID := req.TransactionID
	if txnID == "" {
		txnID = "TXN-" + uuid.NewString()
	}

	payment := &models.Payment{
		BookingID:     req.BookingID,
		UserID:        userID,
		Amount:        totalPrice,
		Currency:      "RON",
		Method:        req.Method,
		Status:        models.PaymentStatusCompleted,
		TransactionID: txnID,
	}

	err = tx.QueryRow(`
		INSERT INTO payments (booking_id, user_id, amount, currency, method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, payment_date
	`, payment.BookingID, payment.UserID, payment.Amount, payment.Currency,
		payment.Method, payment.Status, payment.TransactionID,
	).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE bookings SET payment_status = $1, payment_method = $2 WHERE id = $3
	`, models.PaymentStatusCompleted, req.Method, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking payment status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking": req.BookingID,
		"amount":  totalPrice,
		"method":  req.Method,
	}).Info("payment completed")

	return payment, nil
}

// GetPaymentByBooking returns the payment attached to a booking, visible
// to the booking's owner or an administrator.
func GetPaymentByBooking(bookingID, userID int, role string) (*models.Payment, error) {
	db := database.GetDB()

	var ownerID int
	err := db.QueryRow(`SELECT user_id FROM bookings WHERE id = $1`, bookingID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if ownerID != userID && role != models.RoleAdministrator {
		return nil, ErrForbidden
	}

	var p models.Payment
	var refundDate sql.NullTime
	var refundAmount sql.NullFloat64
	err = db.QueryRow(`
		SELECT id, booking_id, user_id, amount, currency, method, status,
			transaction_id, payment_date, refund_date, refund_amount
		FROM payments WHERE booking_id = $1
	`, bookingID).Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Currency,
		&p.Method, &p.Status, &p.TransactionID, &p.PaymentDate,
		&refundDate, &refundAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if refundDate.Valid {
		p.RefundDate = &refundDate.Time
	}
	if refundAmount.Valid {
		p.RefundAmount = &refundAmount.Float64
	}

	return &p, nil
}
