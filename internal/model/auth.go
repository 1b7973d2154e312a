package model

import "github.com/golang-jwt/jwt/v5"

// OwnerClaims are JWT claims for an authenticated recruiter account.
type OwnerClaims struct {
	OwnerID string `json:"ownerId"`
	jwt.RegisteredClaims
}

// LoginResponse is returned on successful owner login.
type LoginResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}
