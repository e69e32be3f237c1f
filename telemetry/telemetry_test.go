package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	t.Setenv(endpointEnv, "http://localhost:4318")
	assert.True(t, Enabled())
}

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("maze").Start(context.Background(), "maze.generate")
	defer span.End()

	assert.False(t, span.SpanContext().IsSampled(), "spans are no-ops until Setup installs a provider")
}
