// Package export renders identifier lists and saves them through a storage
// backend.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/weiawesome/uidgen/internal/audit"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/pkg/log"
	"github.com/weiawesome/uidgen/pkg/storage"
)

var (
	// ErrEmptyFileName is returned when a caller passes a blank file name.
	ErrEmptyFileName = errors.New("file name must not be empty")
	// ErrInvalidKey is returned for a name that cannot identify an export.
	ErrInvalidKey = errors.New("invalid export file name")
)

// IsExportKey reports whether key can name a saved export: a single visible
// path element ending in one of the format extensions. Anything else sharing
// the storage root is never listed or opened.
func IsExportKey(key string) bool {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return false
	}
	_, ok := FormatForExt(strings.TrimPrefix(path.Ext(key), "."))
	return ok
}

// Receipt describes a finished export.
type Receipt struct {
	Key      string `json:"key"`
	Format   Format `json:"format"`
	Count    int    `json:"count"`
	Bytes    int    `json:"bytes"`
	Location string `json:"location,omitempty"`
	// Skipped is set when there was nothing to write.
	Skipped bool `json:"skipped,omitempty"`
}

// Exporter writes rendered identifier lists to storage.
type Exporter struct {
	store storage.Storage
	now   func() time.Time
}

// NewExporter creates an exporter over store.
func NewExporter(store storage.Storage) *Exporter {
	return &Exporter{store: store, now: time.Now}
}

// Save writes content verbatim under fileName. Failures are logged and
// returned; callers decide whether to surface them.
func (e *Exporter) Save(ctx context.Context, content []byte, fileName, contentType string) error {
	l := log.Ctx(ctx)

	if fileName == "" {
		return ErrEmptyFileName
	}

	if err := e.store.Write(ctx, fileName, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		l.Error().Err(err).Str(log.FieldKey, fileName).Msg("failed to save export")
		return fmt.Errorf("save %s: %w", fileName, err)
	}
	return nil
}

// Export renders ids in format f and saves them. An empty fileName gets a
// suggested one. An empty id list writes nothing.
func (e *Exporter) Export(ctx context.Context, k kind.Kind, f Format, ids []string, fileName string) (*Receipt, error) {
	if f == "" {
		f = FormatRaw
	}
	if _, ok := formats[f]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if fileName == "" {
		fileName = SuggestFileName(k, f, e.now())
	}

	receipt := &Receipt{Key: fileName, Format: f, Count: len(ids)}
	if len(ids) == 0 {
		receipt.Skipped = true
		return receipt, nil
	}

	content, err := Render(f, ids)
	if err != nil {
		return nil, err
	}
	if err := e.Save(ctx, content, fileName, f.ContentType()); err != nil {
		return nil, err
	}
	receipt.Bytes = len(content)

	if loc, err := e.store.GetURL(ctx, fileName, time.Hour); err == nil {
		receipt.Location = loc
	}

	audit.LogWithDetail(ctx, audit.ActionExport, fileName,
		fmt.Sprintf("kind=%s format=%s count=%d", k, f, len(ids)), "ids exported")
	return receipt, nil
}

// List returns previously saved exports whose key starts with prefix.
func (e *Exporter) List(ctx context.Context, prefix string) ([]storage.FileInfo, error) {
	all, err := e.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	files := make([]storage.FileInfo, 0, len(all))
	for _, f := range all {
		if IsExportKey(f.Key) {
			files = append(files, f)
		}
	}
	return files, nil
}

// Open returns a reader over a saved export. Keys that cannot name an
// export read as missing.
func (e *Exporter) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !IsExportKey(key) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return e.store.Read(ctx, key)
}
