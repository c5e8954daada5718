package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:8080")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "receipts/abc/file.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/receipts/abc/file.pdf", url)

	data, err := os.ReadFile(filepath.Join(root, "receipts", "abc", "file.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, store.Delete(context.Background(), "receipts/abc/file.pdf"))
	_, err = os.Stat(filepath.Join(root, "receipts", "abc", "file.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
}
