package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage is returned for payloads that are not base64 image data URIs.
var ErrInvalidImage = errors.New("invalid image: expected data:image/<type>;base64,<data>")

var allowedExtensions = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"jpg":  "jpg",
	"gif":  "gif",
	"webp": "webp",
}

// Store provides file-based storage for uploaded images.
type Store struct {
	basePath string
}

// NewStore creates a new Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// Root returns the directory files are stored under.
func (s *Store) Root() string {
	return s.basePath
}

// SaveDataURI decodes a base64 image data URI and stores it under kind/
// with a random name. The returned path is relative to the store root.
func (s *Store) SaveDataURI(kind, uri string) (string, error) {
	ext, data, err := decodeDataURI(uri)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.basePath, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	rel := path.Join(kind, fmt.Sprintf("%s.%s", uuid.NewString(), ext))
	if err := os.WriteFile(filepath.Join(s.basePath, filepath.FromSlash(rel)), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously stored file. Missing files are ignored.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	if err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(clean))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file %s: %w", rel, err)
	}
	return nil
}

// URL returns the public URL of a stored file, or "" for none.
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + rel
}

func decodeDataURI(uri string) (string, []byte, error) {
	header, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return "", nil, ErrInvalidImage
	}

	ext, ok := allowedExtensions[strings.ToLower(strings.TrimPrefix(header, "data:image/"))]
	if !ok {
		return "", nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, ErrInvalidImage
	}
	return ext, data, nil
}
