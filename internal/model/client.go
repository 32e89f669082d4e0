package model

import "time"

// Client is a contact in a user's private client list.
type Client struct {
	ID        string    `json:"_id"`
	OwnerID   string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}
