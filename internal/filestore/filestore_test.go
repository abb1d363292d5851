package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteAndReadPublished(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	dest, err := store.WritePublished("itam/assets", map[string]any{"x": 1})
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(dest, filepath.Join("processed", "itam", "assets.json")),
		"Slash-separated source ids should map to nested directories")

	doc, err := store.ReadPublished("itam/assets")
	assert.NoError(t, err)
	obj, ok := doc.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, 1.0, obj["x"])
}

func TestReadPublished_NotPublished(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	doc, err := store.ReadPublished("itam/assets")

	assert.NoError(t, err, "Not-yet-published should not be an error")
	assert.Nil(t, doc)
}

func TestWritePublished_Overwrite(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	_, err := store.WritePublished("itsm/incidents", map[string]any{"version": 1})
	assert.NoError(t, err)
	_, err = store.WritePublished("itsm/incidents", map[string]any{"version": 2})
	assert.NoError(t, err)

	doc, err := store.ReadPublished("itsm/incidents")
	assert.NoError(t, err)
	assert.Equal(t, 2.0, doc.(map[string]any)["version"], "Publishing again should fully replace the document")
}

func TestGetInfo(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	info := store.GetInfo("itam/assets")
	assert.False(t, info.Exists)
	assert.Nil(t, info.LastModified)

	_, err := store.WritePublished("itam/assets", []any{map[string]any{"a": 1}})
	assert.NoError(t, err)

	info = store.GetInfo("itam/assets")
	assert.True(t, info.Exists)
	assert.NotNil(t, info.LastModified)
	assert.WithinDuration(t, time.Now(), *info.LastModified, time.Minute)
	assert.Greater(t, info.Size, int64(0))
}

func TestSaveRawUpload(t *testing.T) {
	dataDir := t.TempDir()
	store := NewFileStore(dataDir, "")

	dest, err := store.SaveRawUpload("assets.csv", []byte("name,age\nAlice,30\n"))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(dest, "-assets.csv"), "Raw uploads should keep the original filename after the timestamp prefix")

	content, err := os.ReadFile(dest)
	assert.NoError(t, err)
	assert.Equal(t, "name,age\nAlice,30\n", string(content))
}

func TestReadSeed_Fallback(t *testing.T) {
	seedDir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(seedDir, "itam"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(seedDir, "itam", "assets.json"), []byte(`{"seeded":true}`), 0o644))

	store := NewFileStore(t.TempDir(), seedDir)

	doc, err := store.ReadSeed("itam/assets")
	assert.NoError(t, err)
	assert.Equal(t, true, doc.(map[string]any)["seeded"])

	doc, err = store.ReadSeed("itam/licenses")
	assert.NoError(t, err)
	assert.Nil(t, doc, "Missing seed entries should return nil, not an error")
}

func TestReadSeed_NoSeedDir(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	doc, err := store.ReadSeed("itam/assets")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestPublishedPath_TraversalGuard(t *testing.T) {
	dataDir := t.TempDir()
	store := NewFileStore(dataDir, "")

	dest, err := store.WritePublished("../../etc/passwd", map[string]any{})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(dest, filepath.Join(dataDir, "processed")),
		"Traversal segments must not escape the processed tree")
}
