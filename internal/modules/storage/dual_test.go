package storage

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store; writes under failPrefix fail.
type memStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPrefix string
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPrefix != "" && strings.HasPrefix(path, m.failPrefix) {
		return fmt.Errorf("put %s: backend unavailable", path)
	}
	m.objects[path] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return fmt.Errorf("delete %s: not found", path)
	}
	delete(m.objects, path)
	return nil
}

func (m *memStore) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok, nil
}

func TestDualWriteBothCopiesLand(t *testing.T) {
	store := newMemStore()
	w := NewDualWriter(store, "store", "public")
	canonical, mirror, err := w.Write("a.jpg", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "store/a.jpg", canonical)
	require.Equal(t, "public/a.jpg", mirror)
	require.Equal(t, store.objects[canonical], store.objects[mirror])
}

func TestDualWriteMirrorFailureCompensates(t *testing.T) {
	store := newMemStore()
	store.failPrefix = "public/"
	w := NewDualWriter(store, "store", "public")
	_, _, err := w.Write("a.jpg", []byte("bytes"))
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindPartialWrite))
	// compensating delete removed the canonical copy
	require.Empty(t, store.objects)
}

func TestDualWriteCanonicalFailureIsNotPartial(t *testing.T) {
	store := newMemStore()
	store.failPrefix = "store/"
	w := NewDualWriter(store, "store", "public")
	_, _, err := w.Write("a.jpg", []byte("bytes"))
	require.Error(t, err)
	require.False(t, errs.IsKind(err, errs.KindPartialWrite))
	require.Empty(t, store.objects)
}

func TestDualDeleteRemovesBothCopies(t *testing.T) {
	store := newMemStore()
	w := NewDualWriter(store, "store", "public")
	canonical, mirror, err := w.Write("a.jpg", []byte("bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Delete(canonical, mirror))
	require.Empty(t, store.objects)
}

func TestDualWriterNormalizesDirs(t *testing.T) {
	w := NewDualWriter(newMemStore(), "store/", "public")
	require.Equal(t, "store/x.png", w.CanonicalPath("x.png"))
	require.Equal(t, "public/x.png", w.MirrorPath("x.png"))
}
