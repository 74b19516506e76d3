package models

import "time"

// User is a persisted auth principal. PasswordHash is a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for credential verification
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=1,max=255"`
}

// SignupRequest is the payload for account creation
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=255"`
}

// AuthResponse is returned after a successful login or signup
type AuthResponse struct {
	Success bool         `json:"success"`
	Session *UserSession `json:"session,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// LogoutResponse is returned after logout
type LogoutResponse struct {
	Success bool `json:"success"`
}
