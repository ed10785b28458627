// Package fs implements the batch output sink on the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/minjae-dev/campcrawl"
)

// Ensure BatchWriter implements campcrawl.BatchWriter at compile time.
var _ campcrawl.BatchWriter = (*BatchWriter)(nil)

// BatchWriter writes one JSON array per site with atomic update semantics.
// The array is written to a temporary file first, then moved into place, so
// readers never observe a partially written batch.
type BatchWriter struct {
	dir string
}

// NewBatchWriter creates a writer targeting dir. The directory is created on
// first write if it does not exist.
func NewBatchWriter(dir string) *BatchWriter {
	return &BatchWriter{dir: dir}
}

func (w *BatchWriter) WriteBatch(ctx context.Context, site campcrawl.Site, campaigns []*campcrawl.Campaign) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if campaigns == nil {
		campaigns = []*campcrawl.Campaign{}
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	finalPath := filepath.Join(w.dir, site.SnapshotFilename())
	tempPath := finalPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(campaigns); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	return os.Rename(tempPath, finalPath)
}
