package dto

import "time"

// TokenRequest asks for an API token bound to a ledger account address.
type TokenRequest struct {
	Account string `json:"account" binding:"required,max=128"`
}

// TokenResponse carries the signed JWT back to the caller.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
