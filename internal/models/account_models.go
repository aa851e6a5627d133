package models

import "time"

// Account is a first-party account that can own bookmarks.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the login/register request body.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the bearer token issued on login or registration.
type AuthResponse struct {
	Token string `json:"token"`
}

// APIError is the JSON error body of the first-party service. Message is
// surfaced verbatim to the user for conflict and validation failures.
type APIError struct {
	Message string `json:"message"`
}
