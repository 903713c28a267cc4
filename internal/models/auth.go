package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// SessionClaims is the signed envelope carried in the admin cookie. The raw
// Token must additionally be present in the admin's device-token allow-list.
type SessionClaims struct {
	Token string `json:"token"`
	jwt.RegisteredClaims
}
