package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsLockTimeout(t *testing.T) {
	lockErr := &pgconn.PgError{Code: pgCodeLockNotAvailable, Message: "canceling statement due to lock timeout"}

	assert.True(t, isLockTimeout(lockErr))
	// Debe atravesar el wrapping de fmt.Errorf
	assert.True(t, isLockTimeout(fmt.Errorf("get snapshot for update: %w", lockErr)))

	assert.False(t, isLockTimeout(&pgconn.PgError{Code: pgCodeUniqueViolation}))
	assert.False(t, isLockTimeout(errors.New("cualquier otro error")))
	assert.False(t, isLockTimeout(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	dupErr := &pgconn.PgError{Code: pgCodeUniqueViolation, Message: "duplicate key value"}

	assert.True(t, isUniqueViolation(dupErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("create sku: %w", dupErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgCodeLockNotAvailable}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}
