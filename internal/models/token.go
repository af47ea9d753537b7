package models

import "time"

// Access Token Response
type TokenResponse struct {
	AccessToken  string    `json:"token"`
	TokenType    string    `json:"tokenType"`
	ExpiresIn    int       `json:"expiresIn"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	Role         Role      `json:"role"`
	IssuedAt     time.Time `json:"issuedAt"`
}

// Token Refresh Request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}
