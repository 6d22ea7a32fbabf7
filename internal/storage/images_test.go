package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("hotelImage", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["hotelImage"][0]
}

func TestLocalImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := LocalImageStore{Dir: dir, MaxBytes: 16}

	t.Run("stores under random name", func(t *testing.T) {
		name, err := store.Save(fileHeader(t, "Front.JPG", []byte("jpegdata")))

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".jpg"))
		assert.NotEqual(t, "Front.JPG", name)
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "jpegdata", string(data))
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := store.Save(fileHeader(t, "script.exe", []byte("x")))
		assert.Error(t, err)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		_, err := store.Save(fileHeader(t, "big.png", bytes.Repeat([]byte("a"), 32)))
		assert.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".png"), "oversized file left behind")
		}
	})

	t.Run("nil file", func(t *testing.T) {
		_, err := store.Save(nil)
		assert.Error(t, err)
	})
}
