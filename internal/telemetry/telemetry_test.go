package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zelda/internal/config"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Telemetry{ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Telemetry{
		Endpoint:    "http://127.0.0.1:4318",
		ServiceName: "test",
	})
	require.NoError(t, err)
	// nothing was recorded, so shutdown does not need the collector
	assert.NoError(t, shutdown(context.Background()))
}
