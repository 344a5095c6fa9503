package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/reactboot/cmd/reactboot/internal/commands"
	"github.com/wolfeidau/reactboot/internal/config"
)

var (
	version = "dev"
	cli     struct {
		Init    commands.InitCmd  `cmd:"" default:"withargs" help:"Scaffold a React project in the current directory and install its dependencies"`
		Build   commands.BuildCmd `cmd:"" help:"Bundle the project entry point with esbuild"`
		Serve   commands.ServeCmd `cmd:"" help:"Build and serve the project"`
		Debug   bool              `help:"Enable debug mode." env:"REACTBOOT_DEBUG"`
		Tracing bool              `help:"Export traces and metrics over OTLP." env:"REACTBOOT_TRACING"`
		Version kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("reactboot"),
		kong.Description("Scaffold, build and serve a React single page project."),
		kong.Configuration(config.YAML, config.DefaultPaths...),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Tracing: cli.Tracing, Version: version})
	cmd.FatalIfErrorf(err)
}
