package results

import (
	"context"
	"fmt"

	"github.com/klejdi94/simscore/core"
	"github.com/klejdi94/simscore/storage"
)

// BlobWriter writes the result set as one JSON document under a key in a blob store (e.g. S3).
type BlobWriter struct {
	store storage.BlobStore
	key   string
}

// NewBlobWriter creates a writer storing the document under key (DefaultFile when empty).
func NewBlobWriter(store storage.BlobStore, key string) *BlobWriter {
	if key == "" {
		key = DefaultFile
	}
	return &BlobWriter{store: store, key: key}
}

// Location returns the key the document is written to.
func (b *BlobWriter) Location() string {
	return b.key
}

// Write implements Writer.
func (b *BlobWriter) Write(ctx context.Context, rs core.ResultSet) error {
	data, err := Marshal(rs)
	if err != nil {
		return fmt.Errorf("blob results encode: %w", err)
	}
	if err := b.store.Put(ctx, b.key, data); err != nil {
		return fmt.Errorf("blob results %s: %w", b.key, err)
	}
	return nil
}
