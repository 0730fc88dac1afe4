package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"railmate/database"
	"railmate/models"
	"railmate/utils"
)

// Register creates an account and returns it with a fresh token. Emails
// are stored lowercased so logins are case-insensitive.
func Register(req models.RegisterRequest) (*models.User, string, error) {
	db := database.GetDB()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleUser,
	}

	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, email, hash, user.FirstName, user.LastName, user.Phone, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.CreateToken(user.ID, user.Role, cfg.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	logrus.WithField("email", email).Info("user registered")

	return user, token, nil
}

// Login authenticates an account by email and password. Unknown email and
// wrong password collapse into the same error.
func Login(req models.LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := getUserByEmail(email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role, cfg.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func GetUserByID(id int) (*models.User, error) {
	db := database.GetDB()
	return scanUser(db.QueryRow(userSelect+` WHERE id = $1`, id))
}

func getUserByEmail(email string) (*models.User, error) {
	db := database.GetDB()
	return scanUser(db.QueryRow(userSelect+` WHERE email = $1`, email))
}

const userSelect = `
	SELECT id, email, password_hash, first_name, last_name, phone, role, created_at
	FROM users
`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile changes the caller's profile. Fields left nil in the
// request keep their current values.
func UpdateProfile(userID int, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	db := database.GetDB()
	_, err = db.Exec(`
		UPDATE users SET first_name = $1, last_name = $2, phone = $3 WHERE id = $4
	`, user.FirstName, user.LastName, user.Phone, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the caller's account. Accounts with bookings on
// record are refused so the booking history stays consistent.
func DeleteAccount(userID int) error {
	db := database.GetDB()

	var hasBookings bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id = $1)
	`, userID).Scan(&hasBookings)
	if err != nil {
		return err
	}
	if hasBookings {
		return ErrAccountHasBookings
	}

	res, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	logrus.WithField("user", userID).Info("account deleted")
	return nil
}
