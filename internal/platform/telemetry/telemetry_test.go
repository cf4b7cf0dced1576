package telemetry

import (
	"context"
	"testing"

	"pet-dispatch/internal/platform/logger"

	"github.com/stretchr/testify/assert"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown := Setup(context.Background(), Options{ServiceName: "pet-dispatch"}, logger.Nop())
	assert.NoError(t, shutdown(context.Background()))
}
