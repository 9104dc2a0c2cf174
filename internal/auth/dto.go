package auth

import "github.com/fieldline/fieldline-backend/pkg/enums"

// LoginRequest captures the credentials sent to the login endpoint. Role
// selects which account table is consulted.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginResponse contains the tokens and identity produced by a successful login.
type LoginResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	UserID       int64      `json:"id"`
	Role         enums.Role `json:"role"`
	Name         string     `json:"name"`
}

// Identity is the authenticated caller returned by verification.
type Identity struct {
	UserID int64      `json:"id"`
	Role   enums.Role `json:"role"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
}
