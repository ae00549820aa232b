package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterShape(t *testing.T) {
	assert.Equal(t, "all", FilterShape(false, false))
	assert.Equal(t, "category", FilterShape(true, false))
	assert.Equal(t, "search", FilterShape(false, true))
	assert.Equal(t, "category+search", FilterShape(true, true))
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingOptions{Enabled: false, OTLPEndpoint: "localhost:4317"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	shutdown, err = InitTracing(context.Background(), TracingOptions{Enabled: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
