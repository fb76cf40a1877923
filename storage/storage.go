package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buckets used by the application.
const (
	RoomPhotos      = "room-photos"
	PaymentReceipts = "payment-receipts"
)

// Store persists uploaded files and returns a public URL for them.
type Store interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ExtensionFor returns the file extension for an accepted upload content type.
func ExtensionFor(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	ext, ok := allowedTypes[ct]
	return ext, ok
}

// Sniff detects the content type from the first 512 bytes of body instead of
// trusting the client's header. The returned reader still yields every byte.
func Sniff(body io.Reader) (io.Reader, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	return io.MultiReader(bytes.NewReader(head), body), http.DetectContentType(head), nil
}

// ObjectKey builds "<prefix>/<yyyy>/<mm>/<uuid><ext>".
func ObjectKey(prefix, ext string, now time.Time) string {
	return path.Join(prefix, now.UTC().Format("2006/01"), uuid.NewString()+ext)
}

type Config struct {
	Driver        string
	S3Bucket      string
	S3Region      string
	S3PublicBase  string
	UploadDir     string
	PublicBaseURL string
}

// New picks the backend named by cfg.Driver.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicBase)
	case "local", "":
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}
