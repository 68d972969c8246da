package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM slots"))
	assert.Equal(t, "update", operation("  UPDATE slots SET booked_count = booked_count + 1"))
	assert.Equal(t, "insert", operation("INSERT INTO bookings (a) VALUES ($1)"))
}

func TestGetExecutorPrefersTransaction(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))

	tx := &Tx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, &DB{}))
}
