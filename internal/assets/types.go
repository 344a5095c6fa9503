package assets

import (
	"sync"
)

type BuildMetadata struct {
	Outputs map[string]OutputInfo `json:"outputs"`
}

type OutputInfo struct {
	EntryPoint string       `json:"entryPoint"`
	Imports    []ImportInfo `json:"imports"`
	Bytes      int          `json:"bytes"`
}

type ImportInfo struct {
	Path string `json:"path"`
}

// Pipeline manages the asset build process and script loading
type Pipeline struct {
	config   Config
	metadata *BuildMetadata
	mu       sync.RWMutex
}

// New creates a new asset pipeline with the given configuration
func New(config Config) *Pipeline {
	return &Pipeline{
		config: config,
	}
}

// OutputDir returns the directory bundles are written to
func (p *Pipeline) OutputDir() string {
	return joinRoot(p.config.Root, p.config.OutputDir)
}
