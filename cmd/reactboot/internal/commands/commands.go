package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/logger"
	"github.com/wolfeidau/reactboot/internal/telemetry"
)

const serviceName = "reactboot"

type Globals struct {
	Debug   bool
	Tracing bool
	Version string
}

// setup configures logging and, when enabled, telemetry. The returned func
// flushes telemetry and must be called before exit.
func (g *Globals) setup(ctx context.Context) func() {
	log.Logger = logger.Setup(g.Debug)

	if !g.Tracing {
		return func() {}
	}

	shutdown, err := telemetry.InitTelemetry(ctx, serviceName, g.Version)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without it")
		return func() {}
	}

	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}
}
