// Package results persists a ResultSet once a run has completed.
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/klejdi94/simscore/core"
)

// DefaultFile is the path results are written to when none is configured.
const DefaultFile = "embedding_results.json"

// Writer persists a complete result set.
type Writer interface {
	Write(ctx context.Context, rs core.ResultSet) error
}

// Encode writes rs as 2-space indented JSON in document order, without HTML escaping
// and without a trailing newline.
func Encode(w io.Writer, rs core.ResultSet) error {
	data, err := Marshal(rs)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the encoded form of rs (see Encode).
func Marshal(rs core.ResultSet) ([]byte, error) {
	return marshal(rs)
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
