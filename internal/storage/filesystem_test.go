package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "out"))
	require.NoError(t, err)

	key, err := store.Write(context.Background(), "/2023/poster.png", []byte("png!"))
	require.NoError(t, err)
	assert.Equal(t, "2023/poster.png", key)

	data, err := os.ReadFile(filepath.Join(store.BasePath(), "2023", "poster.png"))
	require.NoError(t, err)
	assert.Equal(t, "png!", string(data))

	leftovers, err := filepath.Glob(filepath.Join(store.BasePath(), "2023", ".export-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "a.png", want: "a.png"},
		{key: `dir\a.png`, want: "dir/a.png"},
		{key: "./x/../a.png", want: "a.png"},
		{key: "../escape.png", wantErr: true},
		{key: "..", wantErr: true},
		{key: "  ", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, err := sanitizeKey(tc.key)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore(" ")
	require.Error(t, err)
}
