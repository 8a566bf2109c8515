package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bad-bets/internal/config"
)

func TestConnectRejectsMalformedDSN(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database config")
}

func TestNewDBUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewDB(ctx, &config.DatabaseConfig{
		Host:           "127.0.0.1",
		Port:           1,
		Name:           "bad_bets",
		User:           "postgres",
		SSLMode:        "disable",
		MaxConnections: 1,
	})
	assert.Error(t, err)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))
	assert.NoError(t, db.Ping(ctx))
}
