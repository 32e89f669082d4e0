package model

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID string
	Email  string
}
