package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"railmate/services"
)

// SearchTrains finds trains serving a from/to pair, optionally on a given
// date. Both station names are required; the date is YYYY-MM-DD.
func SearchTrains(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		respondBadRequest(c, "from and to are required")
		return
	}

	results, err := services.SearchTrains(from, to, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"trains":  results,
	})
}

// GetTrain returns one train with wagons, route and live availability.
// With from/to query params the times and price are resolved for that
// segment of the route.
func GetTrain(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid train id")
		return
	}

	result, err := services.GetTrain(id, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "train": result})
}
