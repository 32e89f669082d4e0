package dto

import (
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/service"
)

// RegisterRequest represents the request body for POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// UpdateProfileRequest represents the request body for PUT /api/auth/profile.
// Phone is a pointer so an explicit empty string can be told apart from an absent field.
type UpdateProfileRequest struct {
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	ProfilePicture string  `json:"profilePicture"`
}

// ProfileResponse is returned by a successful profile update.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// ForgotPasswordRequest represents the request body for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the request body for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ToInput converts the request to service input.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{FullName: r.FullName, Email: r.Email, Password: r.Password}
}

// ToPatch converts the request to a service patch.
func (r UpdateProfileRequest) ToPatch() service.ProfilePatch {
	return service.ProfilePatch{
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		ProfilePicture: r.ProfilePicture,
	}
}

// ToAuthResponse converts a service result.
func ToAuthResponse(message string, res *service.AuthResult) AuthResponse {
	return AuthResponse{Message: message, User: res.User, Token: res.Token}
}
