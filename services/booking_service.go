package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"railmate/database"
	"railmate/models"
)

// AvailableSeats counts the seats on a train not held by confirmed, paid
// bookings, clamped at zero. Cancelled and unpaid bookings never reduce
// availability. Always computed fresh from the booking store.
func AvailableSeats(trainID int) (int, error) {
	db := database.GetDB()

	var total int
	err := db.QueryRow(`SELECT total_seats FROM trains WHERE id = $1`, trainID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTrainNotFound
	}
	if err != nil {
		return 0, err
	}

	var booked int
	err = db.QueryRow(`
		SELECT COALESCE(SUM(jsonb_array_length(passengers)), 0)
		FROM bookings
		WHERE train_id = $1 AND status = $2 AND payment_status = $3
	`, trainID, models.BookingStatusConfirmed, models.PaymentStatusCompleted).Scan(&booked)
	if err != nil {
		return 0, err
	}

	return clampAvailable(total, booked), nil
}

func clampAvailable(total, booked int) int {
	if booked >= total {
		return 0
	}
	return total - booked
}

// occupiedSeats builds the set of (wagon, seat) pairs held by confirmed,
// paid bookings on a train.
func occupiedSeats(q queryable, trainID int) (map[SeatKey]bool, error) {
	rows, err := q.Query(`
		SELECT passengers
		FROM bookings
		WHERE train_id = $1 AND status = $2 AND payment_status = $3
	`, trainID, models.BookingStatusConfirmed, models.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[SeatKey]bool)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var passengers []models.Passenger
		if err := json.Unmarshal(raw, &passengers); err != nil {
			return nil, err
		}
		for _, p := range passengers {
			occupied[SeatKey{Wagon: p.WagonNumber, Seat: p.SeatNumber}] = true
		}
	}
	return occupied, rows.Err()
}

// CreateBooking reserves seats for the given passengers. The whole
// operation runs in one transaction that locks the train row, so two
// concurrent purchases for the same train serialize and cannot double-book
// a seat or oversell capacity.
func CreateBooking(userID int, req models.BookingRequest) (*models.Booking, error) {
	if len(req.Passengers) == 0 {
		return nil, ErrIncompleteRequest
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCard
	}
	switch method {
	case models.PaymentMethodCard, models.PaymentMethodPayPal, models.PaymentMethodTransfer:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrIncompleteRequest, method)
	}

	db := database.GetDB()
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	train, err := loadTrain(tx, req.TrainID, true)
	if err != nil {
		return nil, err
	}

	// The purchase may cover an intermediate segment of the route.
	fromID, toID := train.FromID, train.ToID
	if req.From != "" && req.To != "" {
		from, err := FindStationByName(req.From)
		if err != nil {
			return nil, err
		}
		to, err := FindStationByName(req.To)
		if err != nil {
			return nil, err
		}
		fromID, toID = from.ID, to.ID
	}

	segment, ok := ResolveSegment(train, fromID, toID)
	if !ok {
		return nil, ErrRouteNotServed
	}

	occupied, err := occupiedSeats(tx, train.ID)
	if err != nil {
		return nil, err
	}
	if clampAvailable(train.TotalSeats, len(occupied)) < len(req.Passengers) {
		return nil, ErrInsufficientCapacity
	}

	passengers, err := AllocateSeats(train, req.Passengers, occupied)
	if err != nil {
		return nil, err
	}

	totalPrice := round2(segment.Price * float64(len(passengers)))
	snapshot := segment.Snapshot(train)

	number, err := generateBookingNumber(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	snapJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	paxJSON, err := json.Marshal(passengers)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		BookingNumber: number,
		UserID:        userID,
		TrainID:       train.ID,
		TrainSnapshot: snapshot,
		Passengers:    passengers,
		PaymentMethod: method,
		PaymentStatus: models.PaymentStatusPending,
		TotalPrice:    totalPrice,
		Status:        models.BookingStatusConfirmed,
		QRCode:        qrCodeURL(number),
	}

	err = tx.QueryRow(`
		INSERT INTO bookings (booking_number, user_id, train_id, train_snapshot,
			passengers, payment_method, payment_status, total_price, status, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, booking_date
	`, number, userID, train.ID, snapJSON, paxJSON,
		method, booking.PaymentStatus, totalPrice, booking.Status, booking.QRCode,
	).Scan(&booking.ID, &booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking":    number,
		"train":      train.TrainNumber,
		"passengers": len(passengers),
		"total":      totalPrice,
	}).Info("booking created")

	return booking, nil
}

const bookingSelect = `
	SELECT b.id, b.booking_number, b.user_id, b.train_id, b.train_snapshot,
		b.passengers, b.payment_method, b.payment_status, b.total_price,
		b.status, b.booking_date, b.cancellation_date, b.cancellation_reason,
		b.qr_code,
		t.train_number, t.type, o.name, d.name, t.departure_time, t.arrival_time, t.price
	FROM bookings b
	LEFT JOIN trains t ON b.train_id = t.id
	LEFT JOIN stations o ON t.from_station_id = o.id
	LEFT JOIN stations d ON t.to_station_id = d.id
`

// ListUserBookings returns the caller's bookings, newest first. Each
// booking's train view prefers the stored snapshot and falls back to the
// live train record for legacy rows.
func ListUserBookings(userID int) ([]models.Booking, error) {
	db := database.GetDB()
	rows, err := db.Query(bookingSelect+`
		WHERE b.user_id = $1
		ORDER BY b.booking_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

// GetBooking fetches one booking for its owner or an administrator.
// Bookings created before QR generation get their code backfilled here.
func GetBooking(bookingID, userID int, role string) (*models.Booking, error) {
	db := database.GetDB()
	booking, err := scanBooking(db.QueryRow(bookingSelect+` WHERE b.id = $1`, bookingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && role != models.RoleAdministrator {
		return nil, ErrForbidden
	}

	if booking.QRCode == "" {
		booking.QRCode = qrCodeURL(booking.BookingNumber)
		if _, err := db.Exec(`UPDATE bookings SET qr_code = $1 WHERE id = $2`,
			booking.QRCode, booking.ID); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// CancelBooking flips a confirmed booking to cancelled and refunds its
// completed payment, if any. Cancellation is terminal.
func CancelBooking(bookingID, userID int, role, reason string) (*models.Booking, error) {
	db := database.GetDB()
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var ownerID int
	var status string
	err = tx.QueryRow(`
		SELECT user_id, status FROM bookings WHERE id = $1 FOR UPDATE
	`, bookingID).Scan(&ownerID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if ownerID != userID && role != models.RoleAdministrator {
		return nil, ErrForbidden
	}
	if status == models.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	_, err = tx.Exec(`
		UPDATE bookings
		SET status = $1, payment_status = $2, cancellation_date = $3, cancellation_reason = $4
		WHERE id = $5
	`, models.BookingStatusCancelled, models.PaymentStatusRefunded, now, reason, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Refund the linked payment when one was completed.
	var paymentID int
	var amount float64
	var payStatus string
	err = tx.QueryRow(`
		SELECT id, amount, status FROM payments WHERE booking_id = $1 FOR UPDATE
	`, bookingID).Scan(&paymentID, &amount, &payStatus)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil && payStatus == models.PaymentStatusCompleted {
		_, err = tx.Exec(`
			UPDATE payments
			SET status = $1, refund_date = $2, refund_amount = $3
			WHERE id = $4
		`, models.PaymentStatusRefunded, now, amount, paymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to refund payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	logrus.WithField("booking", bookingID).Info("booking cancelled")

	return GetBooking(bookingID, userID, role)
}

// scanBooking reads a joined booking row and applies the snapshot-or-live
// display rule.
func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var snapJSON, paxJSON []byte
	var cancelDate sql.NullTime
	var liveNumber, liveType, liveFrom, liveTo sql.NullString
	var liveDep, liveArr sql.NullTime
	var livePrice sql.NullFloat64

	err := row.Scan(&b.ID, &b.BookingNumber, &b.UserID, &b.TrainID, &snapJSON,
		&paxJSON, &b.PaymentMethod, &b.PaymentStatus, &b.TotalPrice,
		&b.Status, &b.BookingDate, &cancelDate, &b.CancellationReason,
		&b.QRCode,
		&liveNumber, &liveType, &liveFrom, &liveTo, &liveDep, &liveArr, &livePrice)
	if err != nil {
		return nil, err
	}

	if cancelDate.Valid {
		b.CancellationDate = &cancelDate.Time
	}

	var snapshot models.TrainSnapshot
	if err := json.Unmarshal(snapJSON, &snapshot); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paxJSON, &b.Passengers); err != nil {
		return nil, err
	}

	var live *models.TrainSnapshot
	if liveNumber.Valid {
		live = &models.TrainSnapshot{
			TrainNumber:   liveNumber.String,
			Type:          liveType.String,
			From:          liveFrom.String,
			To:            liveTo.String,
			DepartureTime: liveDep.Time,
			ArrivalTime:   liveArr.Time,
			Price:         livePrice.Float64,
		}
	}
	b.TrainSnapshot = segmentView(snapshot, live, b.BookingDate)

	return &b, nil
}

// segmentView picks what to display for a booking's train: the stored
// snapshot when valid, else the live train record, else a sentinel built
// from whatever the row still carries.
func segmentView(snapshot models.TrainSnapshot, live *models.TrainSnapshot, bookingDate time.Time) models.TrainSnapshot {
	if snapshot.Valid() {
		return snapshot
	}
	if live != nil && live.TrainNumber != "" {
		return *live
	}

	out := snapshot
	if out.TrainNumber == "" {
		out.TrainNumber = models.SnapshotUnknown
	}
	if out.Type == "" {
		out.Type = models.SnapshotUnknown
	}
	if out.From == "" {
		out.From = models.SnapshotUnknown
	}
	if out.To == "" {
		out.To = models.SnapshotUnknown
	}
	if out.DepartureTime.IsZero() {
		out.DepartureTime = bookingDate
	}
	if out.ArrivalTime.IsZero() {
		out.ArrivalTime = bookingDate
	}
	return out
}

// generateBookingNumber issues a unique, human-readable reference.
func generateBookingNumber(tx *sql.Tx) (string, error) {
	year := time.Now().Year()

	var count int
	err := tx.QueryRow(`
		SELECT COUNT(*) + 1
		FROM bookings
		WHERE EXTRACT(YEAR FROM booking_date) = $1
	`, year).Scan(&count)
	if err != nil {
		return "", err
	}

	number := fmt.Sprintf("RM-%d-%05d", year, count)

	// Concurrent requests can race the count; fall back to a
	// timestamp-based reference.
	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_number = $1)
	`, number).Scan(&exists)
	if err != nil {
		return "", err
	}
	if exists {
		number = fmt.Sprintf("RM-%d-%d", year, time.Now().UnixNano()%100000000)
	}

	return number, nil
}

func qrCodeURL(bookingNumber string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" +
		url.QueryEscape(bookingNumber)
}
