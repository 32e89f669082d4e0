// Package model defines domain entities for the application.
package model

import "time"

// User is an account holder. Every client and meeting is owned by exactly one user.
type User struct {
	ID             string    `json:"_id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never serialize
	Phone          string    `json:"phone"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}
