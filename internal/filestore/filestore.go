package filestore

import (
	"dashboard-service/internal/models"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore is the filesystem-backed blob store for raw upload audit copies
// and published dashboard documents. Published documents live under
// processed/<sourceId>.json with slash-separated source segments mapped to
// nested directories; a parallel seed tree provides default content before
// anything has been published.
type FileStore struct {
	uploadsDir   string
	processedDir string
	seedDir      string
}

// NewFileStore creates a store rooted at dataDir, with seedDir as the
// read-only fallback tree.
func NewFileStore(dataDir, seedDir string) *FileStore {
	return &FileStore{
		uploadsDir:   filepath.Join(dataDir, "uploads"),
		processedDir: filepath.Join(dataDir, "processed"),
		seedDir:      seedDir,
	}
}

// EnsureDirectories creates the runtime directories.
func (fs *FileStore) EnsureDirectories() error {
	for _, dir := range []string{fs.uploadsDir, fs.processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveRawUpload writes an immutable timestamp-prefixed copy of the original
// upload for audit purposes. It is never read back by the pipeline.
func (fs *FileStore) SaveRawUpload(filename string, content []byte) (string, error) {
	if err := fs.EnsureDirectories(); err != nil {
		return "", err
	}
	dest := filepath.Join(fs.uploadsDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename)))
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to save raw upload: %w", err)
	}
	slog.Info("Saved raw upload", "path", dest, "size", len(content))
	return dest, nil
}

// WritePublished serializes data as pretty-printed JSON under the path
// derived from sourceID. Full overwrite; concurrent publishers for the same
// source are last-writer-wins.
func (fs *FileStore) WritePublished(sourceID string, data any) (string, error) {
	if err := fs.EnsureDirectories(); err != nil {
		return "", err
	}

	dest := fs.publishedPath(sourceID)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", sourceID, err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document for %s: %w", sourceID, err)
	}
	if err := os.WriteFile(dest, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write published document for %s: %w", sourceID, err)
	}

	slog.Info("Wrote published document", "source_id", sourceID, "path", dest, "size", len(encoded))
	return dest, nil
}

// ReadPublished returns the published document for a source, or nil when
// nothing has been published yet. Not-yet-published is a normal state, not
// an error.
func (fs *FileStore) ReadPublished(sourceID string) (any, error) {
	return readJSON(fs.publishedPath(sourceID))
}

// ReadSeed returns the bundled seed document for a source, or nil when the
// seed tree has no entry for it.
func (fs *FileStore) ReadSeed(sourceID string) (any, error) {
	if fs.seedDir == "" {
		return nil, nil
	}
	return readJSON(filepath.Join(fs.seedDir, filepath.FromSlash(sourceID)+".json"))
}

// GetInfo reports stat-based metadata for a source's published document.
func (fs *FileStore) GetInfo(sourceID string) models.BlobInfo {
	stat, err := os.Stat(fs.publishedPath(sourceID))
	if err != nil {
		return models.BlobInfo{Exists: false}
	}
	mod := stat.ModTime()
	return models.BlobInfo{Exists: true, LastModified: &mod, Size: stat.Size()}
}

func (fs *FileStore) publishedPath(sourceID string) string {
	clean := strings.TrimPrefix(filepath.Clean("/"+filepath.FromSlash(sourceID)), string(filepath.Separator))
	return filepath.Join(fs.processedDir, clean+".json")
}

func readJSON(path string) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return data, nil
}
