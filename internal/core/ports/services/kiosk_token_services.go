package services

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// KioskTokenSvc defines operations for kiosk terminal token management
type KioskTokenSvc interface {
	// CreateKioskToken issues a token for a company terminal.
	// Returns the plaintext token (only shown once) and the token details
	CreateKioskToken(ctx context.Context, requesterID, companyID, name string, expiresIn *time.Duration) (string, *domain.KioskToken, error)

	// ListKioskTokens returns all tokens of a company
	ListKioskTokens(ctx context.Context, requesterID, companyID string) ([]domain.KioskToken, error)

	// RevokeKioskToken disables a token
	RevokeKioskToken(ctx context.Context, requesterID, companyID, tokenID string) error

	// ValidateKioskToken checks a presented token and returns it when usable.
	// Updates the last_used_at timestamp if the token is valid
	ValidateKioskToken(ctx context.Context, rawToken string) (*domain.KioskToken, error)
}
