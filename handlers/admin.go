package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"railmate/services"
)

// GetDashboardStats returns the admin reporting aggregates, optionally
// filtered by date range, booking status and payment status.
func GetDashboardStats(c *gin.Context) {
	var filter services.StatsFilter
	var err error

	if v := c.Query("startDate"); v != "" {
		filter.StartDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			respondBadRequest(c, "invalid startDate, expected YYYY-MM-DD")
			return
		}
	}
	if v := c.Query("endDate"); v != "" {
		filter.EndDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			respondBadRequest(c, "invalid endDate, expected YYYY-MM-DD")
			return
		}
		// Inclusive end of day.
		filter.EndDate = filter.EndDate.Add(24*time.Hour - time.Second)
	}
	filter.Status = c.Query("status")
	filter.PaymentStatus = c.Query("paymentStatus")

	stats, err := services.DashboardStats(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// AdminGetBookings pages through all bookings across all users.
func AdminGetBookings(c *gin.Context) {
	page, limit := pageParams(c)

	bookings, pagination, err := services.AdminListBookings(page, limit,
		c.Query("status"), c.Query("paymentStatus"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   bookings,
		"pagination": pagination,
	})
}

// AdminGetUsers pages through all accounts.
func AdminGetUsers(c *gin.Context) {
	page, limit := pageParams(c)

	users, pagination, err := services.AdminListUsers(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	})
}

// AdminGetTrains pages through the catalog with live availability.
func AdminGetTrains(c *gin.Context) {
	page, limit := pageParams(c)

	trains, pagination, err := services.AdminListTrains(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"trains":     trains,
		"pagination": pagination,
	})
}
