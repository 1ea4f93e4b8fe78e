package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgCheckViolation, ConstraintName: sourceCheckConstraint}

	name, ok := constraintViolation(fmt.Errorf("insert: %w", pgErr), pgCheckViolation)
	assert.True(t, ok)
	assert.Equal(t, sourceCheckConstraint, name)

	_, ok = constraintViolation(pgErr, pgUniqueViolation)
	assert.False(t, ok, "different code must not match")

	_, ok = constraintViolation(errors.New("connection reset"), pgCheckViolation)
	assert.False(t, ok)
}

func TestAdvisoryKey_ScopedByCompany(t *testing.T) {
	assert.NotEqual(t, advisoryKey("w1", "c1"), advisoryKey("w1", "c2"))
	assert.Equal(t, advisoryKey("w1", "c1"), advisoryKey("w1", "c1"))
}

func TestTxFromContext(t *testing.T) {
	_, ok := txFromContext(context.Background())
	assert.False(t, ok)

	repo := &BaseRepository{}
	assert.Nil(t, repo.Pool)
	// Outside a transaction DB falls back to the pool.
	assert.Equal(t, querier(repo.Pool), repo.DB(context.Background()))
}
