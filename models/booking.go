package models

import "time"

// Booking lifecycle. The only transition is confirmed -> cancelled.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment status carried on a booking. Bookings start pending and become
// completed once a payment record is created for them.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusFailed    = "failed"
)

// Accepted payment methods.
const (
	PaymentMethodCard     = "card"
	PaymentMethodPayPal   = "paypal"
	PaymentMethodTransfer = "transfer"
)

// SnapshotUnknown is the sentinel written into snapshots whose station
// names could not be resolved at booking time.
const SnapshotUnknown = "N/A"

// Passenger is embedded in a booking. Wagon and seat are assigned by the
// seat allocator at booking time; a caller may request a specific pair.
type Passenger struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	WagonNumber int    `json:"wagonNumber"`
	SeatNumber  string `json:"seatNumber"`
}

// TrainSnapshot is the immutable copy of the resolved segment stored on a
// booking. It is authoritative for display: the live train record reflects
// the full route while the snapshot reflects the purchased segment.
type TrainSnapshot struct {
	TrainNumber   string    `json:"trainNumber"`
	Type          string    `json:"type"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `json:"price"`
}

// Valid reports whether the snapshot is usable for display. Legacy bookings
// created before snapshotting carry empty or sentinel station names and
// fall back to the live train record.
func (s TrainSnapshot) Valid() bool {
	return s.TrainNumber != "" &&
		s.From != "" && s.From != SnapshotUnknown &&
		s.To != "" && s.To != SnapshotUnknown
}

// Booking is a reservation for one or more passengers on a train segment.
type Booking struct {
	ID                 int           `json:"id"`
	BookingNumber      string        `json:"bookingNumber"`
	UserID             int           `json:"userId"`
	TrainID            int           `json:"trainId"`
	TrainSnapshot      TrainSnapshot `json:"train"`
	Passengers         []Passenger   `json:"passengers"`
	PaymentMethod      string        `json:"paymentMethod"`
	PaymentStatus      string        `json:"paymentStatus"`
	TotalPrice         float64       `json:"totalPrice"`
	Status             string        `json:"status"`
	BookingDate        time.Time     `json:"bookingDate"`
	CancellationDate   *time.Time    `json:"cancellationDate,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	QRCode             string        `json:"qrCode,omitempty"`
}

// BookingRequest is the purchase payload. From/To are optional station
/// names: the purchase flow may be buying an intermediate segment of the
// train's route. Price is accepted for client compatibility but the server
// always re-derives the fare from the resolved segment.
type BookingRequest struct {
	TrainID       int         `json:"trainId" binding:"required"`
	From          string      `json:"from"`
	To            string      `json:"to"`
	Passengers    []Passenger `json:"passengers" binding:"required,min=1,dive"`
	PaymentMethod string      `json:"paymentMethod"`
	Price         float64     `json:"price"`
}

// CancelRequest optionally carries the reason for a cancellation.
type CancelRequest struct {
	Reason string `json:"reason"`
}
