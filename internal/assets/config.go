package assets

type Config struct {
	// Project root, bundle paths are resolved against it
	Root string
	// Entry points relative to Root (e.g., "src/main.jsx")
	EntryPoints []string
	// Output directory for built files, relative to Root
	OutputDir string
	// Output filename pattern without extension, "[name]" is the entry file's base name
	EntryNames string
	// Path to metafile, relative to Root
	MetafilePath string
	// Whether to minify output
	Minify bool
	// Whether to inline source maps
	SourceMap bool
}

// DefaultConfig mirrors the generated webpack configuration
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		EntryPoints:  []string{"src/main.jsx"},
		OutputDir:    "dist/js",
		EntryNames:   "[name].bundle",
		MetafilePath: "dist/meta.json",
		Minify:       false,
		SourceMap:    true,
	}
}
