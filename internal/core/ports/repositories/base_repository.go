package repositories

import (
	"context"
)

// UnitOfWork runs store operations as one logical unit.
type UnitOfWork interface {
	// WithinTx runs fn inside a transaction carried by the context passed to fn.
	// It commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Savepoint runs fn so that a failing statement does not poison the
	// surrounding transaction. Outside a transaction it simply calls fn.
	Savepoint(ctx context.Context, fn func(ctx context.Context) error) error
}
