package pgsql

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
)

// PgxKioskTokenRepository implements the KioskTokenRepository interface for PostgreSQL
type PgxKioskTokenRepository struct {
	BaseRepository
}

// newPgxKioskTokenRepository creates a new PostgreSQL kiosk token repository
func newPgxKioskTokenRepository(pool *pgxpool.Pool) portsrepo.KioskTokenRepository {
	return &PgxKioskTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.KioskTokenRepository = (*PgxKioskTokenRepository)(nil)

const kioskTokenSelectQuery = `
SELECT token_id, company_id, name, secret_hash, created_by, last_used_at, expires_at, revoked_at, created_at
FROM kiosk_tokens
`

// CreateKioskToken inserts a new kiosk token into the database
func (r *PgxKioskTokenRepository) CreateKioskToken(ctx context.Context, token domain.KioskToken) error {
	query := `
		INSERT INTO kiosk_tokens (token_id, company_id, name, secret_hash, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.DB(ctx).Exec(ctx, query,
		token.TokenID,
		token.CompanyID,
		token.Name,
		token.SecretHash,
		token.CreatedBy,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create kiosk token", err)
	}
	return nil
}

// FindKioskTokenByID retrieves a kiosk token by its ID
func (r *PgxKioskTokenRepository) FindKioskTokenByID(ctx context.Context, tokenID string) (*domain.KioskToken, error) {
	return collectOne[domain.KioskToken](ctx, r.DB(ctx), "kiosk token", kioskTokenSelectQuery+`WHERE token_id = $1`, tokenID)
}

// ListKioskTokens retrieves all kiosk tokens of a company
func (r *PgxKioskTokenRepository) ListKioskTokens(ctx context.Context, companyID string) ([]domain.KioskToken, error) {
	return collectRows[domain.KioskToken](ctx, r.DB(ctx), "kiosk tokens",
		kioskTokenSelectQuery+`WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

// TouchKioskToken updates last_used_at
func (r *PgxKioskTokenRepository) TouchKioskToken(ctx context.Context, tokenID string, at time.Time) error {
	_, err := r.DB(ctx).Exec(ctx, `UPDATE kiosk_tokens SET last_used_at = $2 WHERE token_id = $1;`, tokenID, at)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update kiosk token", err)
	}
	return nil
}

// RevokeKioskToken marks a token revoked
func (r *PgxKioskTokenRepository) RevokeKioskToken(ctx context.Context, companyID, tokenID string, at time.Time) error {
	query := `
		UPDATE kiosk_tokens
		SET revoked_at = COALESCE(revoked_at, $3)
		WHERE token_id = $1 AND company_id = $2;
	`
	tag, err := r.DB(ctx).Exec(ctx, query, tokenID, companyID, at)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to revoke kiosk token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
