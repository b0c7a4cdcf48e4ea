package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cityops/auth-service/internal/config"
	"github.com/cityops/auth-service/internal/telemetry"
)

func TestNilProviderYieldsUsableTracer(t *testing.T) {
	var p *telemetry.Provider

	tracer := p.Tracer()
	require.NotNil(t, tracer)
	_, span := tracer.Start(context.Background(), "test")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewWithoutEndpointInstallsNoopProvider(t *testing.T) {
	p, err := telemetry.New(context.Background(), config.Config{}, zap.NewNop())
	require.NoError(t, err)

	tracer := p.Tracer()
	require.NotNil(t, tracer)
	_, span := tracer.Start(context.Background(), "test")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}
