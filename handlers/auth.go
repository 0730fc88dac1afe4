package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railmate/middleware"
	"railmate/models"
	"railmate/services"
)

// Register creates a new account and returns it with a token.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid registration request: "+err.Error())
		return
	}

	user, token, err := services.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": token})
}

// Login authenticates an account and returns it with a token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid login request: "+err.Error())
		return
	}

	user, token, err := services.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

// GetProfile returns the authenticated user's account.
func GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile edits the authenticated user's account.
func UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid profile request: "+err.Error())
		return
	}

	updated, err := services.UpdateProfile(user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// DeleteAccount removes the authenticated user's account. Accounts with
// booking history are refused.
func DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := services.DeleteAccount(user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
