package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadForUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	fi, err := ReadForUpload(path)
	require.NoError(t, err)

	assert.Equal(t, "hello.txt", fi.Name)
	assert.Equal(t, int64(11), fi.Size)
	assert.Contains(t, fi.MimeType, "text/plain")
	assert.Equal(t, []byte("hello world"), fi.Data)
}

func TestReadForUpload_Missing(t *testing.T) {
	_, err := ReadForUpload(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}
