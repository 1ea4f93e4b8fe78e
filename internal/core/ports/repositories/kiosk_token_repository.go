package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
)

// KioskTokenRepository defines the interface for kiosk token data access operations
type KioskTokenRepository interface {
	// CreateKioskToken persists a new token
	CreateKioskToken(ctx context.Context, token domain.KioskToken) error

	// FindKioskTokenByID retrieves a token by its ID
	FindKioskTokenByID(ctx context.Context, tokenID string) (*domain.KioskToken, error)

	// ListKioskTokens retrieves all tokens of a company
	ListKioskTokens(ctx context.Context, companyID string) ([]domain.KioskToken, error)

	// TouchKioskToken updates last_used_at
	TouchKioskToken(ctx context.Context, tokenID string, at time.Time) error

	// RevokeKioskToken marks a company's token revoked
	RevokeKioskToken(ctx context.Context, companyID, tokenID string, at time.Time) error
}
