package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	"github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/utils"
)

// KioskTokenPrefix marks kiosk terminal tokens: kio_<token id>.<secret>
const KioskTokenPrefix = "kio_"

const kioskSecretBytes = 32 // 32 bytes = 256 bits

// kioskTokenService implements the KioskTokenSvc interface
type kioskTokenService struct {
	BaseService
	tokenRepo repositories.KioskTokenRepository
	clock     Clock
}

// NewKioskTokenService creates a new instance of kioskTokenService
func NewKioskTokenService(tokenRepo repositories.KioskTokenRepository, memberships repositories.MembershipReader, clock Clock) portssvc.KioskTokenSvc {
	if clock == nil {
		clock = SystemClock()
	}
	return &kioskTokenService{
		BaseService: BaseService{Memberships: memberships},
		tokenRepo:   tokenRepo,
		clock:       clock,
	}
}

// CreateKioskToken issues a new terminal token for the company
func (s *kioskTokenService) CreateKioskToken(ctx context.Context, requesterID, companyID, name string, expiresIn *time.Duration) (string, *domain.KioskToken, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, apperrors.NewValidationFailedError("token name is required")
	}
	if _, err := s.AuthorizeMember(ctx, requesterID, companyID, true); err != nil {
		return "", nil, err
	}

	// Generate a random secret
	secret, err := utils.GenerateSecureRandomString(kioskSecretBytes)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Hash the secret for storage
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash token: %w", err)
	}

	now := s.clock.Now()
	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := now.Add(*expiresIn)
		expiresAt = &expiry
	}

	token := &domain.KioskToken{
		TokenID:    uuid.NewString(),
		CompanyID:  companyID,
		Name:       name,
		SecretHash: string(secretHash),
		CreatedBy:  requesterID,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}
	if err := s.tokenRepo.CreateKioskToken(ctx, *token); err != nil {
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.LogInfo(ctx, "Issued kiosk token",
		slog.String("company_id", companyID),
		slog.String("token_id", token.TokenID))

	// Return the plaintext token (only time it's available) and the token details
	return KioskTokenPrefix + token.TokenID + "." + secret, token, nil
}

// ListKioskTokens returns all kiosk tokens of a company
func (s *kioskTokenService) ListKioskTokens(ctx context.Context, requesterID, companyID string) ([]domain.KioskToken, error) {
	if _, err := s.AuthorizeMember(ctx, requesterID, companyID, true); err != nil {
		return nil, err
	}
	tokens, err := s.tokenRepo.ListKioskTokens(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// RevokeKioskToken disables a kiosk token of the company
func (s *kioskTokenService) RevokeKioskToken(ctx context.Context, requesterID, companyID, tokenID string) error {
	if _, err := s.AuthorizeMember(ctx, requesterID, companyID, true); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeKioskToken(ctx, companyID, tokenID, s.clock.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("kiosk token not found")
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ValidateKioskToken checks a presented kiosk token
func (s *kioskTokenService) ValidateKioskToken(ctx context.Context, rawToken string) (*domain.KioskToken, error) {
	tokenID, secret, ok := splitKioskToken(rawToken)
	if !ok {
		return nil, errors.New("malformed kiosk token")
	}

	token, err := s.tokenRepo.FindKioskTokenByID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	now := s.clock.Now()
	if !token.IsUsable(now) {
		return nil, errors.New("token has expired or was revoked")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(token.SecretHash), []byte(secret)); err != nil {
		return nil, errors.New("invalid token")
	}

	// Update last used timestamp
	if err := s.tokenRepo.TouchKioskToken(ctx, token.TokenID, now); err != nil {
		// Log the error but don't fail the validation
		s.LogWarn(ctx, err, "Failed to update kiosk token last use", slog.String("token_id", token.TokenID))
	}
	return token, nil
}

// splitKioskToken parses kio_<id>.<secret>.
func splitKioskToken(raw string) (string, string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), KioskTokenPrefix)
	if !ok {
		return "", "", false
	}
	id, secret, ok := strings.Cut(rest, ".")
	if !ok || secret == "" {
		return "", "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "", false
	}
	return id, secret, true
}
