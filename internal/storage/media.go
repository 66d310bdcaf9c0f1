package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrTooLarge   = errors.New("file too large")
	ErrNotAnImage = errors.New("file is not an image")
)

const profilePicturesDir = "profile_pics"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Media is where profile pictures live. Stored files are addressed by a
// slash separated name such as profile_pics/<uuid>.png.
type Media interface {
	Check(fh *multipart.FileHeader) (string, error)
	SaveProfilePicture(c *gin.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, name string) error
	// Serve answers GET /media/*filepath.
	Serve(c *gin.Context)
}

// checker holds the upload rules shared by every store.
type checker struct {
	maxBytes int64
}

// Check rejects oversize uploads and anything that does not sniff as an
// image. It returns the extension the file will be stored with.
func (ch checker) Check(fh *multipart.FileHeader) (string, error) {
	_, ext, err := ch.sniff(fh)
	return ext, err
}

func (ch checker) sniff(fh *multipart.FileHeader) (contentType, ext string, err error) {
	if fh.Size > ch.maxBytes {
		return "", "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", "", ErrNotAnImage
	}
	contentType = http.DetectContentType(head[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", "", ErrNotAnImage
	}
	return contentType, ext, nil
}

func newPictureName(ext string) string {
	return path.Join(profilePicturesDir, uuid.NewString()+ext)
}

// cleanName turns a request path into a stored name, refusing anything
// that climbs out of the media root.
func cleanName(p string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" || name == "." || strings.Contains(p, "..") {
		return "", false
	}
	return name, true
}

// URL is the public path of a stored file.
func URL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + rel
}
