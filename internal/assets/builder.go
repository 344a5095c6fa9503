package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/reactboot/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Build runs esbuild with the configured settings and loads metadata
func (p *Pipeline) Build() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	opts, err := p.buildOptions()
	if err != nil {
		return err
	}

	log.Info().Strs("entrypoints", p.config.EntryPoints).Msg("Building assets")

	start := time.Now()
	result := api.Build(opts)
	recordBuild(len(result.Errors) == 0, time.Since(start))

	if len(result.Errors) > 0 {
		logMessages(result.Errors)
		return errors.New("esbuild failed with errors")
	}

	for _, file := range result.OutputFiles {
		log.Info().Str("file", file.Path).Msg("Built file")
	}

	metafilePath := joinRoot(p.config.Root, p.config.MetafilePath)
	if err := os.MkdirAll(filepath.Dir(metafilePath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(metafilePath, []byte(result.Metafile), 0600); err != nil {
		return err
	}

	var metadata BuildMetadata
	if err := json.Unmarshal([]byte(result.Metafile), &metadata); err != nil {
		return err
	}

	p.metadata = &metadata
	return nil
}

// Watch rebuilds whenever an input changes until ctx is cancelled.
func (p *Pipeline) Watch(ctx context.Context) error {
	opts, err := p.buildOptions()
	if err != nil {
		return err
	}

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		logMessages(ctxErr.Errors)
		return errors.New("failed to create build context")
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("failed to start watch: %w", err)
	}

	log.Info().Strs("entrypoints", p.config.EntryPoints).Msg("Watching assets")

	<-ctx.Done()
	return nil
}

func (p *Pipeline) buildOptions() (api.BuildOptions, error) {
	if len(p.config.EntryPoints) == 0 {
		return api.BuildOptions{}, errors.New("no entry points found")
	}

	root, err := filepath.Abs(p.config.Root)
	if err != nil {
		return api.BuildOptions{}, err
	}

	for _, entry := range p.config.EntryPoints {
		if _, err := os.Stat(filepath.Join(root, entry)); err != nil {
			return api.BuildOptions{}, fmt.Errorf("entry point %s: %w", entry, err)
		}
	}

	return api.BuildOptions{
		AbsWorkingDir:     root,
		EntryPoints:       p.config.EntryPoints,
		EntryNames:        p.config.EntryNames,
		Bundle:            true,
		Write:             true,
		Outdir:            filepath.Join(root, p.config.OutputDir),
		Format:            api.FormatIIFE,
		Platform:          api.PlatformBrowser,
		Loader:            map[string]api.Loader{".js": api.LoaderJSX},
		ResolveExtensions: []string{".js", ".jsx"},
		Define:            map[string]string{"process.env.NODE_ENV": `"development"`},
		MinifyWhitespace:  p.config.Minify,
		MinifyIdentifiers: p.config.Minify,
		MinifySyntax:      p.config.Minify,
		Sourcemap:         cond(p.config.SourceMap, api.SourceMapInline, api.SourceMapNone),
		Metafile:          true,
	}, nil
}

// LoadScripts returns the ordered list of script paths needed for the given entrypoint
// and the main entrypoint file path
func (p *Pipeline) LoadScripts(entryPointPath string) ([]string, string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.metadata == nil {
		return nil, "", errors.New("assets not built yet, call Build() first")
	}

	scripts := []string{}
	visited := make(map[string]bool)
	var entrypoint string

	// Find the output file for this entrypoint
	for outputPath, info := range p.metadata.Outputs {
		if info.EntryPoint == entryPointPath {
			entrypoint = "/" + outputPath
			scripts = append(scripts, entrypoint)
			visited[outputPath] = true
			p.addDependencies(info, &scripts, visited)
			return scripts, entrypoint, nil
		}
	}

	return nil, "", errors.New("entrypoint not found in metadata")
}

func (p *Pipeline) addDependencies(output OutputInfo, scripts *[]string, visited map[string]bool) {
	for _, imp := range output.Imports {
		if !visited[imp.Path] {
			visited[imp.Path] = true
			*scripts = append(*scripts, "/"+imp.Path)

			if chunkInfo, exists := p.metadata.Outputs[imp.Path]; exists {
				p.addDependencies(chunkInfo, scripts, visited)
			}
		}
	}
}

func logMessages(msgs []api.Message) {
	for _, msg := range msgs {
		evt := log.Error().Str("error", msg.Text)
		if msg.Location != nil {
			evt = evt.Str("file", msg.Location.File).Int("line", msg.Location.Line)
		}
		evt.Msg("Build error")
	}
}

func recordBuild(ok bool, elapsed time.Duration) {
	m := telemetry.GetMetrics()
	attrs := metric.WithAttributes(attribute.Bool("success", ok))
	m.AssetBuildsTotal.Add(context.Background(), 1, attrs)
	m.AssetBuildDuration.Record(context.Background(), float64(elapsed.Milliseconds()), attrs)
}

func joinRoot(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
