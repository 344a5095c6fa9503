package devserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) (string, Config) {
	t.Helper()
	root := t.TempDir()
	outputDir := filepath.Join(root, "dist", "js")
	require.NoError(t, os.MkdirAll(outputDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>root index</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "main.bundle.js"), []byte("console.log('bundle');"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "logo.txt"), []byte("from dist"), 0644))

	return root, DefaultConfig(root, outputDir)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_ServesIndexAtRoot(t *testing.T) {
	_, config := setupProject(t)
	h := New(config).Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>root index</html>", rec.Body.String())
}

func TestServer_ServesBundleFromOutputDir(t *testing.T) {
	_, config := setupProject(t)
	h := New(config).Handler()

	rec := get(t, h, "/main.bundle.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log('bundle');", rec.Body.String())
}

func TestServer_ContentBaseOrder(t *testing.T) {
	root, config := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.txt"), []byte("from root"), 0644))
	h := New(config).Handler()

	rec := get(t, h, "/logo.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from root", rec.Body.String())

	require.NoError(t, os.Remove(filepath.Join(root, "logo.txt")))

	rec = get(t, h, "/logo.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from dist", rec.Body.String())
}

func TestServer_NotFound(t *testing.T) {
	_, config := setupProject(t)
	h := New(config).Handler()

	rec := get(t, h, "/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RejectsTraversal(t *testing.T) {
	root, config := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("secret"), 0644))
	t.Cleanup(func() { _ = os.Remove(filepath.Join(filepath.Dir(root), "secret.txt")) })
	h := New(config).Handler()

	rec := get(t, h, "/../secret.txt")
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	_, config := setupProject(t)
	h := New(config).Handler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Gzip(t *testing.T) {
	root, config := setupProject(t)
	large := "console.log('" + strings.Repeat("a", 8192) + "');"
	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "js", "large.js"), []byte(large), 0644))
	h := New(config).Handler()

	req := httptest.NewRequest(http.MethodGet, "/large.js", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Less(t, rec.Body.Len(), len(large))
}

func TestServer_Addr(t *testing.T) {
	s := New(DefaultConfig("/app", "/app/dist/js"))
	assert.Equal(t, "localhost:1337", s.Addr())
}
