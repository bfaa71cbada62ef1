package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage relays uploaded files to the hosted media service and returns
// a public URL for the stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// RandomStorageKey builds a date-partitioned object key under prefix,
// preserving the original file extension.
func RandomStorageKey(prefix, ext string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v%s", prefix, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}
