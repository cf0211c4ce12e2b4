package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"academy-service/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger(&config.Config{Log: config.Log{Level: "debug"}})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger(&config.Config{Log: config.Log{Level: "chatty"}})
	require.Error(t, err)
}
