//go:build unit

package pgconv_test

import (
	"fmt"
	"testing"

	"rental-booking/internal/pkg/pgconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	assert.True(t, pgconv.IsUniqueViolation(unique))
	assert.False(t, pgconv.IsUniqueViolation(serialization))
	assert.True(t, pgconv.IsRetryable(serialization))
	assert.True(t, pgconv.IsRetryable(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.False(t, pgconv.IsRetryable(unique))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
}

func TestTextConversion(t *testing.T) {
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))

	s := "BK-1"
	got := pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s))
	if assert.NotNil(t, got) {
		assert.Equal(t, s, *got)
	}
}
