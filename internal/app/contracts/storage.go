package contracts

import (
	"context"
	"io"
)

// ObjectStorage persists raw document payloads outside the metadata store.
type ObjectStorage interface {
	PutObject(ctx context.Context, objectName, contentType string, payload []byte) (string, error)
	GetObject(ctx context.Context, objectName string) (io.ReadCloser, error)
}
