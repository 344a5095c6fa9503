package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleFile(t *testing.T) {
	assert.Equal(t, "main.bundle.js", BundleFile())
}

func TestRenderWebpackConfig(t *testing.T) {
	data, err := renderWebpackConfig(DefaultOptions())
	require.NoError(t, err)

	config := string(data)
	assert.Contains(t, config, "devtool: 'inline-source-map',")
	assert.Contains(t, config, "main: path.resolve(__dirname, 'src', 'main.jsx')")
	assert.Contains(t, config, "path: path.join(__dirname, 'dist', 'js'),")
	assert.Contains(t, config, "filename: '[name].bundle.js'")
	assert.Contains(t, config, "index: 'index.html',")
	assert.Contains(t, config, "extensions: ['.js', '.jsx'],")
	assert.NotContains(t, config, "<no value>")
}

func TestRenderEntry(t *testing.T) {
	data, err := renderEntry(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "console.log('hello world');", string(data))
}

func TestExampleComponents(t *testing.T) {
	files, err := exampleComponents()
	require.NoError(t, err)

	require.Len(t, files, 4)
	assert.Contains(t, string(files["UserProfile.js"]), "import UserAvatar from './UserAvatar';")
	assert.Contains(t, string(files["ExampleApp.js"]), "export default ExampleApp;")
}
