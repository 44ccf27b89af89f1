// Package dataset loads the items to score from JSON documents shaped
// {"<item id>": {"source": {"text": "..."}, "translations": {"<label>": "...", ...}}, ...}.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klejdi94/simscore/core"
	"github.com/klejdi94/simscore/storage"
)

// Decode reads a dataset, keeping items and translations in document order.
// Malformed JSON or an item without source text is an error.
func Decode(r io.Reader) (core.Dataset, error) {
	var ds core.Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return core.Dataset{}, fmt.Errorf("dataset decode: %w", err)
	}
	for _, id := range ds.Keys() {
		item, _ := ds.Get(id)
		if err := item.Validate(); err != nil {
			return core.Dataset{}, fmt.Errorf("dataset item %q: %w", id, err)
		}
	}
	return ds, nil
}

// LoadFile reads a dataset from a local JSON file.
func LoadFile(path string) (core.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// LoadBlob reads a dataset stored under key in a blob store (e.g. S3).
func LoadBlob(ctx context.Context, store storage.BlobStore, key string) (core.Dataset, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("dataset %s: %w", key, err)
	}
	return Decode(bytes.NewReader(data))
}
