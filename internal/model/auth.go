package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// AdminClaims are the JWT claims for an authenticated admin
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}
