package dto

import (
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// CreateKioskTokenRequest represents the request body for issuing a terminal token.
type CreateKioskTokenRequest struct {
	Name             string `json:"name" binding:"required,min=3,max=100"`
	ExpiresInSeconds *int64 `json:"expires_in_seconds,omitempty" binding:"omitempty,min=60"`
}

// ExpiresIn returns the requested lifetime, nil for a token that never expires.
func (r CreateKioskTokenRequest) ExpiresIn() *time.Duration {
	if r.ExpiresInSeconds == nil {
		return nil
	}
	d := time.Duration(*r.ExpiresInSeconds) * time.Second
	return &d
}

// KioskTokenResponse represents a kiosk token in API responses.
type KioskTokenResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateKioskTokenResponse is returned once, when the token is issued.
type CreateKioskTokenResponse struct {
	TokenString string             `json:"token"` // only shown once
	Details     KioskTokenResponse `json:"details"`
}

// ListKioskTokensResponse represents a list of kiosk tokens
type ListKioskTokensResponse []KioskTokenResponse

// ToKioskTokenResponse converts a domain.KioskToken to a KioskTokenResponse
func ToKioskTokenResponse(token domain.KioskToken) KioskTokenResponse {
	return KioskTokenResponse{
		ID:         token.TokenID,
		CompanyID:  token.CompanyID,
		Name:       token.Name,
		LastUsedAt: token.LastUsedAt,
		ExpiresAt:  token.ExpiresAt,
		RevokedAt:  token.RevokedAt,
		CreatedAt:  token.CreatedAt,
	}
}

// ToKioskTokenResponseList converts a slice of domain.KioskToken
func ToKioskTokenResponseList(tokens []domain.KioskToken) ListKioskTokensResponse {
	result := make(ListKioskTokensResponse, len(tokens))
	for i, token := range tokens {
		result[i] = ToKioskTokenResponse(token)
	}
	return result
}
