package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	baseDir := t.TempDir()
	storage := NewLocalStorage(baseDir)
	assert.True(t, storage.IsConfigured())

	file := createMockFileHeader("evidence.pdf", []byte("%PDF-1.4 body"), "application/pdf")
	key := GenerateDocumentKey(file.Filename)

	result, err := storage.Upload(context.Background(), file, key)
	assert.NoError(t, err)
	assert.Equal(t, key, result.Key)
	assert.Equal(t, "evidence.pdf", result.FileOriginalName)
	assert.Equal(t, int64(len("%PDF-1.4 body")), result.FileSize)
	assert.Equal(t, "/"+filepath.Join(baseDir, key), result.URL)

	// The blob landed on disk
	content, err := os.ReadFile(filepath.Join(baseDir, key))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(content))

	// Delete removes it, deleting again is a no-op
	assert.NoError(t, storage.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(baseDir, key))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.Delete(context.Background(), key))
}

func TestGenerateDocumentKey(t *testing.T) {
	key := GenerateDocumentKey("report.docx")
	assert.True(t, strings.HasPrefix(key, DocumentKeyPrefix+"/"))
	assert.True(t, strings.HasSuffix(key, ".docx"))

	// Keys are unique per call
	assert.NotEqual(t, key, GenerateDocumentKey("report.docx"))
}
