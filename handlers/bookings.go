package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"railmate/middleware"
	"railmate/models"
	"railmate/services"
)

// CreateBooking purchases seats on a train for the authenticated user.
func CreateBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid booking request: "+err.Error())
		return
	}

	booking, err := services.CreateBooking(user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

// GetUserBookings lists the authenticated user's bookings, newest first.
func GetUserBookings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	bookings, err := services.ListUserBookings(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// GetBooking returns one booking for its owner or an administrator.
func GetBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid booking id")
		return
	}

	booking, err := services.GetBooking(id, user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// CancelBooking cancels a booking and refunds its payment, if any.
func CancelBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid booking id")
		return
	}

	var req models.CancelRequest
	// Body is optional; an empty reason is fine.
	_ = c.ShouldBindJSON(&req)

	booking, err := services.CancelBooking(id, user.ID, user.Role, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "booking cancelled",
		"booking": booking,
	})
}
