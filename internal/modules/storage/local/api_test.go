package local

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Put("store/nested/a.jpg", []byte("bytes")))

	exists, err := s.Exists("store/nested/a.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, s.Delete("store/nested/a.jpg"))

	exists, err = s.Exists("store/nested/a.jpg")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLocalStoreDeleteMissing(t *testing.T) {
	s := New(t.TempDir())
	require.Error(t, s.Delete("missing.jpg"))
}
