package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/reactboot/internal/assets"
	"github.com/wolfeidau/reactboot/internal/devserver"
	"golang.org/x/sync/errgroup"
)

// ServeCmd builds the project, then serves it and rebuilds on change.
type ServeCmd struct {
	Dir   string `help:"Project directory" default:"." type:"existingdir" env:"REACTBOOT_DIR"`
	Host  string `help:"Listen host" default:"localhost" env:"REACTBOOT_HOST"`
	Port  int    `help:"Listen port" default:"1337" env:"REACTBOOT_PORT"`
	Index string `help:"Document served for directory requests" default:"index.html"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	flush := globals.setup(ctx)
	defer flush()

	config := assets.DefaultConfig()
	config.Root = c.Dir
	pipeline := assets.New(config)

	if err := pipeline.Build(); err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	serverConfig := devserver.DefaultConfig(c.Dir, pipeline.OutputDir())
	serverConfig.Host = c.Host
	serverConfig.Port = c.Port
	serverConfig.Index = c.Index
	server := devserver.New(serverConfig)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pipeline.Watch(ctx) })
	g.Go(func() error { return server.ListenAndServe(ctx) })

	return g.Wait()
}
