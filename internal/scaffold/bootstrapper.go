// Package scaffold creates the files of a new React single page project and
// installs its npm dependencies.
//
// A run is a fixed sequence of steps executed in order: create the source
// directory, write package.json, webpack.config.js, src/main.jsx and
// index.html, then run the installer. The first failing step ends the run.
// Files already written are left in place and no step is retried.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const tracerName = "github.com/wolfeidau/reactboot/internal/scaffold"

// Installer installs the dependencies declared in the manifest found in dir.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// Options controls the generated project.
type Options struct {
	// Root is the project directory, defaults to the working directory.
	Root        string
	Name        string
	Description string
	Title       string
	// Port used by the dev server.
	Port int
	// Example writes the example components and mounts them from the entry file.
	Example bool
	// SkipInstall stops after the files are written.
	SkipInstall bool
}

// DefaultOptions returns the options of the stock tutorial project.
func DefaultOptions() Options {
	return Options{
		Root:        ".",
		Name:        "react-tutorial",
		Description: "React tutorial boilerplate",
		Title:       "React example",
		Port:        1337,
	}
}

// Result describes a completed run.
type Result struct {
	RunID string
	// Artifacts are the created paths relative to the root, in creation order.
	Artifacts []string
	Duration  time.Duration
}

// Bootstrapper runs the scaffold sequence.
type Bootstrapper struct {
	opts      Options
	installer Installer
}

// New creates a Bootstrapper. installer may be nil only when opts.SkipInstall is set.
func New(opts Options, installer Installer) *Bootstrapper {
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Bootstrapper{
		opts:      opts,
		installer: installer,
	}
}

type step struct {
	name    string
	message string
	// artifact is the path recorded in the result, empty if the step creates nothing.
	artifact string
	run      func(ctx context.Context) error
}

// Run executes every step in order and stops at the first failure.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Str("root", b.opts.Root).Logger()

	if !b.opts.SkipInstall && b.installer == nil {
		return nil, errors.New("installer is required unless install is skipped")
	}

	result := &Result{RunID: runID}

	for _, s := range b.steps() {
		logger.Info().Str("step", s.name).Msg(s.message)

		if err := b.runStep(ctx, s); err != nil {
			logger.Error().Err(err).Str("step", s.name).Msg("Bootstrap failed")
			return nil, err
		}

		if s.artifact != "" {
			result.Artifacts = append(result.Artifacts, s.artifact)
		}
	}

	result.Duration = time.Since(startTime)

	logger.Info().
		Int("artifacts", len(result.Artifacts)).
		Dur("duration", result.Duration).
		Msg("Bootstrap completed")

	return result, nil
}

func (b *Bootstrapper) runStep(ctx context.Context, s step) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "scaffold."+s.name)
	defer span.End()

	start := time.Now()
	err := s.run(ctx)

	outcome := "success"
	if err != nil {
		outcome = "failure"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	m := telemetry.GetMetrics()
	attrs := metric.WithAttributes(
		attribute.String("step", s.name),
		attribute.String("outcome", outcome),
	)
	m.BootstrapStepsTotal.Add(ctx, 1, attrs)
	m.BootstrapStepDuration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)

	return err
}

func (b *Bootstrapper) steps() []step {
	steps := []step{
		{
			name:     "source_dir",
			message:  "creating src folder",
			artifact: SourceDir,
			run:      func(context.Context) error { return b.createSourceDir() },
		},
		b.writeStep("manifest", "creating package.json", ManifestFile, renderManifest),
		b.writeStep("webpack_config", "creating webpack config", WebpackFile, renderWebpackConfig),
		b.writeStep("entry", "creating initial javascript file", filepath.Join(SourceDir, EntryFile), renderEntry),
		b.writeStep("index_html", "creating initial HTML file", IndexFile, renderIndexHTML),
	}

	if b.opts.Example {
		steps = append(steps, step{
			name:     "example_components",
			message:  "creating example components",
			artifact: ComponentsDir,
			run:      func(context.Context) error { return b.writeExampleComponents() },
		})
	}

	if !b.opts.SkipInstall {
		steps = append(steps, step{
			name:    "install",
			message: "installing dependencies",
			run: func(ctx context.Context) error {
				if err := b.installer.Install(ctx, b.opts.Root); err != nil {
					return &InstallFailureError{Err: err}
				}
				return nil
			},
		})
	}

	return steps
}

func (b *Bootstrapper) writeStep(name, message, rel string, renderFn func(Options) ([]byte, error)) step {
	return step{
		name:     name,
		message:  message,
		artifact: rel,
		run: func(context.Context) error {
			data, err := renderFn(b.opts)
			if err != nil {
				return err
			}
			return b.writeFile(rel, data)
		},
	}
}

func (b *Bootstrapper) createSourceDir() error {
	dir := filepath.Join(b.opts.Root, SourceDir)

	if err := os.Mkdir(dir, DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDirectoryExists, dir)
		}
		return &FileWriteError{Path: dir, Err: err}
	}

	return nil
}

// writeFile truncates any existing file at rel.
func (b *Bootstrapper) writeFile(rel string, data []byte) error {
	path := filepath.Join(b.opts.Root, rel)

	if err := os.WriteFile(path, data, FilePerm); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

func (b *Bootstrapper) writeExampleComponents() error {
	dir := filepath.Join(b.opts.Root, ComponentsDir)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return &FileWriteError{Path: dir, Err: err}
	}

	files, err := exampleComponents()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := b.writeFile(filepath.Join(ComponentsDir, name), files[name]); err != nil {
			return err
		}
	}

	return nil
}

