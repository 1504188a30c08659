package storage

import (
	"strings"

	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/logs"
)

// DualWriter lands every blob twice: once under the canonical prefix and
// once under the direct-access mirror prefix. The write is a two-step saga;
// when the mirror write fails a compensating delete of the canonical copy
// is attempted and the caller gets a partial-write error either way, so a
// lone copy is never left behind silently.
type DualWriter struct {
	store        Store
	canonicalDir string
	mirrorDir    string
}

func NewDualWriter(store Store, canonicalDir, mirrorDir string) *DualWriter {
	return &DualWriter{
		store:        store,
		canonicalDir: normalizeDir(canonicalDir),
		mirrorDir:    normalizeDir(mirrorDir),
	}
}

func normalizeDir(dir string) string {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir
}

func (d *DualWriter) CanonicalPath(name string) string {
	return d.canonicalDir + name
}

func (d *DualWriter) MirrorPath(name string) string {
	return d.mirrorDir + name
}

func (d *DualWriter) Store() Store {
	return d.store
}

// Write persists data under both paths and returns them. The canonical copy
// goes first; its failure leaves no partial state.
func (d *DualWriter) Write(name string, data []byte) (canonical, mirror string, err error) {
	canonical = d.CanonicalPath(name)
	mirror = d.MirrorPath(name)
	if putErr := d.store.Put(canonical, data); putErr != nil {
		return "", "", errs.Wrap(errs.KindUnexpected,
			"failed to write image to storage", putErr).
			With("path", canonical)
	}
	if putErr := d.store.Put(mirror, data); putErr != nil {
		if delErr := d.store.Delete(canonical); delErr != nil {
			logs.Logger.Warn().Str("path", canonical).Err(delErr).
				Msg("compensating delete failed, canonical copy orphaned")
		}
		return "", "", errs.Wrap(errs.KindPartialWrite,
			"mirror write failed after canonical write, the upload can be retried without recompressing", putErr).
			With("canonical", canonical).
			With("mirror", mirror)
	}
	return canonical, mirror, nil
}

// Delete removes both copies. Best effort: the first failure is returned
// but both deletes are always attempted.
func (d *DualWriter) Delete(canonical, mirror string) error {
	var firstErr error
	for _, path := range []string{canonical, mirror} {
		if path == "" {
			continue
		}
		if err := d.store.Delete(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
