package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"railmate/services"
)

// respondError maps a service error onto an HTTP status and the standard
// failure envelope. Unrecognized errors become opaque 500s; their details
// go to the log, not the client.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		message = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrStationNotFound),
		errors.Is(err, services.ErrTrainNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrDuplicatePayment),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAccountHasBookings):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientCapacity),
		errors.Is(err, services.ErrIncompleteRequest),
		errors.Is(err, services.ErrRouteNotServed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}
