package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"railmate/services"
)

// GetStations returns the full station directory, ordered by name.
func GetStations(c *gin.Context) {
	stations, err := services.GetAllStations()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(stations),
		"stations": stations,
	})
}

// GetStation returns one station by id.
func GetStation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid station id")
		return
	}

	station, err := services.GetStationByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "station": station})
}
