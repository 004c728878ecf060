package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Store(ctx, "token", []byte("T1")))
	require.NoError(t, s.Store(ctx, "snapshots/UC1-1.json", []byte(`{}`)))

	data, err := s.Retrieve(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "T1", string(data))

	names, err := s.List(ctx, "snapshots/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshots/UC1-1.json"}, names)

	require.NoError(t, s.Delete(ctx, "token"))
	_, err = s.Retrieve(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "token"), "deleting a missing object is not an error")
}

func TestFileStorage_RejectsEscapingNames(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../outside", "/etc/passwd", "."} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Store(context.Background(), name, []byte("x")))
		})
	}
}

func TestMemoryStorage_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	buf := []byte("abc")
	require.NoError(t, s.Store(ctx, "k", buf))
	buf[0] = 'z'

	data, err := s.Retrieve(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
