package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/reactboot/internal/install"
	"github.com/wolfeidau/reactboot/internal/scaffold"
)

// InitCmd scaffolds a new project and installs its dependencies.
type InitCmd struct {
	Dir         string `help:"Project directory" default:"." type:"existingdir" env:"REACTBOOT_DIR"`
	Name        string `help:"Package name written to package.json" default:"react-tutorial"`
	Description string `help:"Package description written to package.json" default:"React tutorial boilerplate"`
	Title       string `help:"Document title written to index.html" default:"React example"`
	Port        int    `help:"Dev server port" default:"1337" env:"REACTBOOT_PORT"`
	Example     bool   `help:"Also write the example profile components"`
	SkipInstall bool   `help:"Write the files without installing dependencies"`
	Npm         string `help:"npm executable used to install dependencies" default:"npm" env:"REACTBOOT_NPM"`
}

func (c *InitCmd) Run(ctx context.Context, globals *Globals) error {
	flush := globals.setup(ctx)
	defer flush()

	opts := c.options()

	installer := install.NewNPM()
	if c.Npm != "" {
		installer.Command = c.Npm
	}

	result, err := scaffold.New(opts, installer).Run(ctx)
	if err != nil {
		if errors.Is(err, scaffold.ErrDirectoryExists) {
			return fmt.Errorf("%w\n\nThe project looks like it has already been scaffolded; remove %s/ to start over", err, scaffold.SourceDir)
		}
		return err
	}

	fmt.Printf("Created %d artifacts in %s\n", len(result.Artifacts), opts.Root)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  %s\n", artifact)
	}
	fmt.Println()
	if opts.SkipInstall {
		fmt.Println("Dependencies were not installed, run: npm install --no-optional")
	}
	fmt.Printf("Start the dev server with: npm start (http://localhost:%d)\n", opts.Port)

	return nil
}

func (c *InitCmd) options() scaffold.Options {
	opts := scaffold.DefaultOptions()
	if c.Dir != "" {
		opts.Root = c.Dir
	}
	if c.Name != "" {
		opts.Name = c.Name
	}
	if c.Description != "" {
		opts.Description = c.Description
	}
	if c.Title != "" {
		opts.Title = c.Title
	}
	if c.Port > 0 {
		opts.Port = c.Port
	}
	opts.Example = c.Example
	opts.SkipInstall = c.SkipInstall
	return opts
}
