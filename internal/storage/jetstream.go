package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// ObjectBucket is the part of jetstream.ObjectStore the media store uses.
type ObjectBucket interface {
	Put(ctx context.Context, meta jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error)
	Get(ctx context.Context, name string, opts ...jetstream.GetObjectOpt) (jetstream.ObjectResult, error)
	Delete(ctx context.Context, name string) error
}

// JetStreamObjectStore keeps profile pictures in a NATS JetStream object
// store bucket.
type JetStreamObjectStore struct {
	checker
	conn   *nats.Conn
	bucket ObjectBucket
}

var _ Media = (*JetStreamObjectStore)(nil)

// NewJetStreamObjectStore connects to NATS and opens the named bucket,
// creating it on first use.
func NewJetStreamObjectStore(ctx context.Context, natsURL, bucketName string, maxBytes int64) (*JetStreamObjectStore, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	bucket, err := js.ObjectStore(ctx, bucketName)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		bucket, err = js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{
			Bucket:      bucketName,
			Description: "Profile pictures",
		})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open object store bucket %q: %w", bucketName, err)
	}

	store := NewObjectStore(bucket, maxBytes)
	store.conn = conn
	return store, nil
}

// NewObjectStore wraps an already opened bucket.
func NewObjectStore(bucket ObjectBucket, maxBytes int64) *JetStreamObjectStore {
	return &JetStreamObjectStore{checker: checker{maxBytes: maxBytes}, bucket: bucket}
}

func (s *JetStreamObjectStore) SaveProfilePicture(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	contentType, ext, err := s.sniff(fh)
	if err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	name := newPictureName(ext)
	meta := jetstream.ObjectMeta{
		Name:    name,
		Headers: nats.Header{"Content-Type": []string{contentType}},
	}
	if _, err := s.bucket.Put(c.Request.Context(), meta, f); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}
	return name, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *JetStreamObjectStore) Delete(ctx context.Context, name string) error {
	name, ok := cleanName(name)
	if !ok {
		return nil
	}
	err := s.bucket.Delete(ctx, name)
	if errors.Is(err, jetstream.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *JetStreamObjectStore) Serve(c *gin.Context) {
	name, ok := cleanName(c.Param("filepath"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	result, err := s.bucket.Get(c.Request.Context(), name)
	if errors.Is(err, jetstream.ErrObjectNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	defer result.Close()

	info, err := result.Info()
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.DataFromReader(http.StatusOK, int64(info.Size), contentType(info.Headers), result, nil)
}

// Close drops the NATS connection, if this store owns one.
func (s *JetStreamObjectStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}

func contentType(headers nats.Header) string {
	if ct := headers.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
