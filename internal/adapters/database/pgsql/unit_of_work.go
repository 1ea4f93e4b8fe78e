package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/time_clock_app/internal/apperrors"
	portsrepo "github.com/SscSPs/time_clock_app/internal/core/ports/repositories"
	"github.com/SscSPs/time_clock_app/internal/middleware"
)

type txCtxKey struct{}

func contextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok
}

// pgxUnitOfWork runs repository calls in a transaction carried by the context.
type pgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &pgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

// WithinTx starts a transaction, or a savepoint if one is already open.
func (u *pgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return u.Savepoint(ctx, fn)
	}
	tx, err := u.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return finish(ctx, tx, fn)
}

// Savepoint runs fn in a pseudo nested transaction so that a failing
// statement only rolls back to the savepoint.
func (u *pgxUnitOfWork) Savepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	outer, ok := txFromContext(ctx)
	if !ok {
		return fn(ctx)
	}
	sp, err := outer.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to create savepoint", err)
	}
	return finish(ctx, sp, fn)
}

func finish(ctx context.Context, tx pgx.Tx, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}
