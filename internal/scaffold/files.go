package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

// Artifact names, relative to the project root.
const (
	SourceDir     = "src"
	ComponentsDir = "components"
	ManifestFile  = "package.json"
	WebpackFile   = "webpack.config.js"
	IndexFile     = "index.html"
	EntryFile     = "main.jsx"

	// BundlePattern is the webpack output filename pattern.
	BundlePattern = "[name].bundle.js"
	// EntryName is the webpack entry key.
	EntryName = "main"
	// MountID is the id of the element the UI is rendered into.
	MountID = "app"
)

const (
	// DirPerm is applied to the source directory. Windows ignores everything
	// but the owner write bit.
	DirPerm  = 0o744
	FilePerm = 0o644
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Manifest is the generated package.json.
type Manifest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// BundleFile returns the bundle filename webpack emits for the main entry.
func BundleFile() string {
	return strings.ReplaceAll(BundlePattern, "[name]", EntryName)
}

// StartScript is the dev server command placed in scripts.start.
func StartScript(port int) string {
	return fmt.Sprintf("webpack-dev-server --progress --colors --port %d", port)
}

func newManifest(opts Options) Manifest {
	return Manifest{
		Name:        opts.Name,
		Description: opts.Description,
		Scripts: map[string]string{
			"start": StartScript(opts.Port),
		},
		Dependencies: map[string]string{
			"react":       "^16.0.0",
			"react-dom":   "^16.0.0",
			"redux":       "^3.7.2",
			"redux-thunk": "^2.2.0",
		},
		DevDependencies: map[string]string{
			"babel-core":         "^6.26.0",
			"babel-loader":       "^7.1.2",
			"babel-preset-env":   "^1.6.1",
			"babel-preset-react": "^6.24.1",
			"css-loader":         "^0.28.7",
			"node-sass":          "^4.7.2",
			"sass-loader":        "^6.0.6",
			"style-loader":       "^0.19.0",
			"webpack":            "^2.0.0",
			"webpack-dev-server": "^2.9.5",
		},
	}
}

func renderManifest(opts Options) ([]byte, error) {
	data, err := json.MarshalIndent(newManifest(opts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

func renderWebpackConfig(opts Options) ([]byte, error) {
	return render("webpack.config.js.tmpl", map[string]any{
		"SourceDir":     SourceDir,
		"EntryFile":     EntryFile,
		"BundlePattern": BundlePattern,
		"Port":          opts.Port,
		"IndexFile":     IndexFile,
	})
}

func renderIndexHTML(opts Options) ([]byte, error) {
	return render("index.html.tmpl", map[string]any{
		"Title":      opts.Title,
		"BundleFile": BundleFile(),
		"MountID":    MountID,
	})
}

func renderEntry(opts Options) ([]byte, error) {
	if opts.Example {
		return render("example_main.jsx.tmpl", map[string]any{"MountID": MountID})
	}
	return render("main.jsx.tmpl", nil)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// exampleComponents returns the example UI components keyed by file name.
func exampleComponents() (map[string][]byte, error) {
	entries, err := fs.ReadDir(templateFS, "templates/components")
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		data, err := fs.ReadFile(templateFS, path.Join("templates/components", entry.Name()))
		if err != nil {
			return nil, err
		}
		files[entry.Name()] = data
	}
	return files, nil
}
