package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/assets"
)

// BuildCmd bundles the project with esbuild using the paths of the generated
// webpack configuration.
type BuildCmd struct {
	Dir    string `help:"Project directory" default:"." type:"existingdir" env:"REACTBOOT_DIR"`
	Minify bool   `help:"Minify the bundle"`
	Watch  bool   `help:"Rebuild when sources change"`
}

func (c *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	flush := globals.setup(ctx)
	defer flush()

	pipeline := assets.New(c.config())

	if err := pipeline.Build(); err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	scripts, _, err := pipeline.LoadScripts(assets.DefaultConfig().EntryPoints[0])
	if err != nil {
		return err
	}
	log.Info().Strs("scripts", scripts).Msg("Assets built")

	if c.Watch {
		return pipeline.Watch(ctx)
	}

	return nil
}

func (c *BuildCmd) config() assets.Config {
	config := assets.DefaultConfig()
	config.Root = c.Dir
	config.Minify = c.Minify
	return config
}
