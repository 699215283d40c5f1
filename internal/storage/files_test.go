package storage

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

// uploadHeader builds a real multipart.FileHeader by round-tripping a
// request through the http parser.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveImage(t *testing.T) {
	base := t.TempDir()
	store := NewStore(base, 1<<20)

	fh := uploadHeader(t, "photo.JPG", []byte("not really a jpeg"))
	rel, err := store.Save(fh, "news", KindImage)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, filepath.ToSlash(base)+"/news/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))
	assert.NotContains(t, rel, "photo")

	data, err := os.ReadFile(filepath.FromSlash(rel))
	require.NoError(t, err)
	assert.Equal(t, "not really a jpeg", string(data))
}

func TestSaveRejectsExtensionPerKind(t *testing.T) {
	store := NewStore(t.TempDir(), 1<<20)

	cases := []struct {
		filename string
		kind     Kind
	}{
		{"report.pdf", KindImage},
		{"photo.png", KindDocument},
		{"clip.exe", KindVideo},
		{"noext", KindImage},
	}
	for _, tc := range cases {
		fh := uploadHeader(t, tc.filename, []byte("x"))
		_, err := store.Save(fh, "misc", tc.kind)
		assert.ErrorIs(t, err, ErrUnsupportedExt, tc.filename)
	}

	fh := uploadHeader(t, "clip.webm", []byte("x"))
	_, err := store.Save(fh, "misc", KindVideo)
	assert.NoError(t, err)
}

func TestSaveRejectsOversize(t *testing.T) {
	store := NewStore(t.TempDir(), 16)

	fh := uploadHeader(t, "big.png", bytes.Repeat([]byte("a"), 17))
	_, err := store.Save(fh, "news", KindImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	fh = uploadHeader(t, "fits.png", bytes.Repeat([]byte("a"), 16))
	_, err = store.Save(fh, "news", KindImage)
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	base := t.TempDir()
	store := NewStore(base, 1<<20)

	fh := uploadHeader(t, "doc.pdf", []byte("pdf bytes"))
	rel, err := store.Save(fh, "certificates", KindDocument)
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.FromSlash(rel))
	assert.True(t, os.IsNotExist(err))

	// Already gone and empty paths are fine.
	assert.NoError(t, store.Remove(rel))
	assert.NoError(t, store.Remove(""))
}

func TestRemoveRefusesOutsideBase(t *testing.T) {
	base := t.TempDir()
	store := NewStore(base, 1<<20)

	outside := filepath.Join(t.TempDir(), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	assert.Error(t, store.Remove(outside))
	assert.Error(t, store.Remove(filepath.ToSlash(filepath.Join(base, "..", "victim.txt"))))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
