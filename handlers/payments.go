package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"railmate/middleware"
	"railmate/models"
	"railmate/services"
)

// CreatePayment settles a pending booking for the authenticated user.
func CreatePayment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payment request: "+err.Error())
		return
	}

	payment, err := services.CreatePayment(user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

// GetPaymentByBooking returns the payment attached to a booking.
func GetPaymentByBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	bookingID, err := strconv.Atoi(c.Param("bookingId"))
	if err != nil {
		respondBadRequest(c, "invalid booking id")
		return
	}

	payment, err := services.GetPaymentByBooking(bookingID, user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}
