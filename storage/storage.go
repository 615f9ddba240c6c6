package storage

import (
	"context"
	"io"
)

// ObjectStore puts uploaded objects somewhere reachable by URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
