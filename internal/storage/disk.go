package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// DiskStore keeps uploaded files under a root directory. It backs local
// development when no object store is configured.
type DiskStore struct {
	checker
	root string
}

var _ Media = (*DiskStore)(nil)

func NewDiskStore(root string, maxBytes int64) *DiskStore {
	return &DiskStore{checker: checker{maxBytes: maxBytes}, root: root}
}

func (s *DiskStore) Root() string {
	return s.root
}

// SaveProfilePicture stores the upload of the current request and returns
// its name.
func (s *DiskStore) SaveProfilePicture(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	ext, err := s.Check(fh)
	if err != nil {
		return "", err
	}
	if err := c.Request.Context().Err(); err != nil {
		return "", err
	}

	name := newPictureName(ext)
	dst := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *DiskStore) Delete(_ context.Context, name string) error {
	name, ok := cleanName(name)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *DiskStore) Serve(c *gin.Context) {
	name, ok := cleanName(c.Param("filepath"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	full := filepath.Join(s.root, filepath.FromSlash(name))
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(full)
}
