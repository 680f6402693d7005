package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, store.Bytes("missing"))

	w, err := store.Create(ctx, "one")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	// Nothing is visible before Close.
	_, err = store.Open(ctx, "one")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrClosed)

	blob, err := store.Open(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, int64(11), blob.Size())

	buf := make([]byte, 11)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello world", string(buf))

	n, err = blob.ReadAt(ctx, make([]byte, 20), 6)
	assert.Equal(t, 5, n)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Put(ctx, "two", []byte("2")))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, names)

	names, err = store.List(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, names)

	// Bytes returns a copy.
	b := store.Bytes("two")
	b[0] = 'x'
	assert.Equal(t, []byte("2"), store.Bytes("two"))

	require.NoError(t, store.Delete(ctx, "two"))
	assert.Nil(t, store.Bytes("two"))
}

func TestBufferedBlob_Abort(t *testing.T) {
	committed := false
	b := NewBufferedBlob(context.Background(), func(context.Context, []byte) error {
		committed = true
		return nil
	})

	_, err := b.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, b.Abort())

	_, err = b.Write([]byte("more"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Sync(), ErrClosed)
	assert.False(t, committed)
}

func TestBytesBlob(t *testing.T) {
	b := NewBytesBlob([]byte("abc"))
	ctx := context.Background()

	n, err := b.ReadAt(ctx, make([]byte, 1), 5)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = b.ReadAt(ctx, make([]byte, 1), -1)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	data, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	assert.NoError(t, b.Close())
}
