package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses; everything else maps to 500.
var (
	ErrStationNotFound      = errors.New("station not found")
	ErrTrainNotFound        = errors.New("train not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrForbidden            = errors.New("you are not allowed to access this resource")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrDuplicatePayment     = errors.New("a payment already exists for this booking")
	ErrInsufficientCapacity = errors.New("not enough free seats on this train")
	ErrIncompleteRequest    = errors.New("incomplete booking request")
	ErrRouteNotServed       = errors.New("train does not serve the requested route")
	ErrEmailTaken           = errors.New("an account with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountHasBookings   = errors.New("account still has bookings; cancel them first")
)
