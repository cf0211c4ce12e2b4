package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolConfig_DefaultsApplicationName(t *testing.T) {
	t.Parallel()

	cfg, err := poolConfig("postgres://u:p@localhost:5432/academy?sslmode=disable")
	require.NoError(t, err)
	require.Equal(t, applicationName, cfg.ConnConfig.RuntimeParams["application_name"])
	require.Equal(t, healthCheckPeriod, cfg.HealthCheckPeriod)

	cfg, err = poolConfig("postgres://u:p@localhost:5432/academy?sslmode=disable&application_name=migrator")
	require.NoError(t, err)
	require.Equal(t, "migrator", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPool_RejectsMalformedDSN(t *testing.T) {
	t.Parallel()

	pool, err := NewPool(context.Background(), "postgres://u:p@localhost:notaport/academy")
	require.ErrorContains(t, err, "parse dsn")
	require.Nil(t, pool)
}
