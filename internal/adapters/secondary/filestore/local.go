package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	ports "hf-endpoint-service/internal/core/ports/output"
)

type local struct {
	root string
}

// NewLocal resolves binary task inputs against a base directory. References
// are relative paths; traversal outside the root is rejected.
func NewLocal(root string) ports.FileStore {
	return &local{root: root}
}

func (s *local) Open(ref string) (io.ReadCloser, string, error) {
	if ref == "" {
		return nil, "", fmt.Errorf("empty file reference")
	}

	path := filepath.Join(s.root, filepath.Clean("/"+ref))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return nil, "", fmt.Errorf("file reference escapes storage root: %s", ref)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("detect mime type of %s: %w", ref, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", ref, err)
	}
	return f, mime.String(), nil
}

var _ ports.FileStore = (*local)(nil)
