package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestSave_PrefixesFilenameAndWritesContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fh := multipartFile(t, "image", "salmon.jpg", "not really a jpg")

	name, err := Save(fh, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_salmon.jpg"))
	assert.NotEqual(t, "salmon.jpg", name, "stored name carries a timestamp prefix")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "not really a jpg", string(data))
}

func TestSave_TwoUploadsSameNameDoNotCollide(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := Save(multipartFile(t, "image", "fish.png", "first"), dir)
	require.NoError(t, err)
	b, err := Save(multipartFile(t, "image", "fish.png", "second"), dir)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSave_StripsDirectoryComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fh := multipartFile(t, "image", "../../evil.png", "x")

	name, err := Save(fh, dir)
	require.NoError(t, err)
	assert.NotContains(t, name, "..")

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}
