package block

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/nvram/blobstore"
	"github.com/hupe1980/nvram/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	out := []byte("0123456789abcdef")
	require.NoError(t, Transfer(ctx, store, out, len(out), "nvram.blk", Write))
	assert.Equal(t, out, store.Bytes("nvram.blk"))

	in := make([]byte, len(out))
	require.NoError(t, Transfer(ctx, store, in, len(in), "nvram.blk", Read))
	assert.Equal(t, out, in)
}

func TestTransfer_WriteUsesLengthPrefixOfBuffer(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, Transfer(ctx, store, []byte("abcdef"), 4, "nvram.blk", Write))
	assert.Equal(t, []byte("abcd"), store.Bytes("nvram.blk"))

	// Overwrite truncates.
	require.NoError(t, Transfer(ctx, store, []byte("xy"), 2, "nvram.blk", Write))
	assert.Equal(t, []byte("xy"), store.Bytes("nvram.blk"))
}

func TestTransfer_ReadAcceptsLongerBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "nvram.blk", []byte("0123456789")))

	buf := make([]byte, 4)
	require.NoError(t, Transfer(ctx, store, buf, 4, "nvram.blk", Read))
	assert.Equal(t, []byte("0123"), buf)
}

func TestTransfer_InvalidArgument(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	assert.ErrorIs(t, Transfer(ctx, store, make([]byte, 8), 8, "", Read), ErrInvalidArgument)
	assert.ErrorIs(t, Transfer(ctx, store, make([]byte, 4), 8, "a.blk", Write), ErrInvalidArgument)
	assert.ErrorIs(t, Transfer(ctx, nil, make([]byte, 8), 8, "a.blk", Read), ErrInvalidArgument)
	assert.Nil(t, store.Bytes("a.blk"))
}

func TestTransfer_MissingStore(t *testing.T) {
	store := blobstore.NewMemoryStore()
	buf := make([]byte, 8)

	err := Transfer(context.Background(), store, buf, 8, "missing.blk", Read)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.NotErrorIs(t, err, ErrShortTransfer)

	var bErr *Error
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, Read, bErr.Dir)
	assert.Equal(t, "missing.blk", bErr.Name)
	assert.Equal(t, 8, bErr.Expected)
	assert.Contains(t, err.Error(), `block load from "missing.blk" failed`)
}

func TestTransfer_ShortRead(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "nvram.blk", []byte("abc")))

	buf := make([]byte, 8)
	err := Transfer(ctx, store, buf, 8, "nvram.blk", Read)
	require.ErrorIs(t, err, ErrShortTransfer)

	var bErr *Error
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, 3, bErr.Actual)
	assert.Equal(t, 8, bErr.Expected)
	assert.Contains(t, err.Error(), "3/8 bytes read")
}

func TestTransfer_TruncatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nvram.blk"), []byte("abcd"), 0o644))

	for _, opts := range [][]blobstore.LocalOption{nil, {blobstore.WithMmap()}} {
		store := blobstore.NewLocalStore(dir, opts...)
		buf := make([]byte, 16)
		err := Transfer(context.Background(), store, buf, 16, "nvram.blk", Read)
		assert.ErrorIs(t, err, ErrShortTransfer)
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestTransfer_ShortWrite(t *testing.T) {
	dir := t.TempDir()
	faulty := fs.NewFaultyFS(nil)
	fault := fs.NoFault
	fault.FailAfterBytes = 5
	fault.Err = fs.ErrInjected
	faulty.AddRule("short.blk", fault)

	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(faulty))
	err := Transfer(context.Background(), store, make([]byte, 16), 16, "short.blk", Write)
	require.ErrorIs(t, err, ErrShortTransfer)
	assert.ErrorIs(t, err, fs.ErrInjected)

	var bErr *Error
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, Write, bErr.Dir)
	assert.Equal(t, 5, bErr.Actual)
	assert.Contains(t, err.Error(), "5/16 bytes wrote")
}

func TestTransfer_ShortWriteAtomicKeepsOld(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	faulty := fs.NewFaultyFS(nil)
	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(faulty), blobstore.WithAtomicWrites())

	require.NoError(t, Transfer(ctx, store, []byte("good data"), 9, "short.blk", Write))

	fault := fs.NoFault
	fault.FailAfterBytes = 2
	fault.Err = fs.ErrInjected
	faulty.AddRule("short.blk", fault)

	err := Transfer(ctx, store, []byte("bad data!"), 9, "short.blk", Write)
	require.ErrorIs(t, err, ErrShortTransfer)

	data, err := os.ReadFile(filepath.Join(dir, "short.blk"))
	require.NoError(t, err)
	assert.Equal(t, "good data", string(data))
}

func TestTransfer_OpenFailure(t *testing.T) {
	dir := t.TempDir()
	faulty := fs.NewFaultyFS(nil)
	fault := fs.NoFault
	fault.FailOnOpen = true
	fault.Err = fs.ErrInjected
	faulty.AddRule("locked.blk", fault)

	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(faulty))
	err := Transfer(context.Background(), store, make([]byte, 8), 8, "locked.blk", Write)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, fs.ErrInjected)
	assert.Contains(t, err.Error(), "block save from")
}

func TestTransfer_SyncAndCloseFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		fault func(*fs.Fault)
	}{
		{"sync", func(f *fs.Fault) { f.FailOnSync = true }},
		{"close", func(f *fs.Fault) { f.FailOnClose = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faulty := fs.NewFaultyFS(nil)
			fault := fs.NoFault
			fault.Err = fs.ErrInjected
			tt.fault(&fault)
			faulty.AddRule(tt.name+".blk", fault)

			store := blobstore.NewLocalStore(t.TempDir(), blobstore.WithFileSystem(faulty))
			err := Transfer(ctx, store, make([]byte, 8), 8, tt.name+".blk", Write)
			assert.ErrorIs(t, err, ErrStoreUnavailable)
			assert.ErrorIs(t, err, fs.ErrInjected)
		})
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "load", Read.Op())
	assert.Equal(t, "save", Write.Op())
	assert.Equal(t, "read", Read.Verb())
	assert.Equal(t, "wrote", Write.Verb())
	assert.Equal(t, "save", Write.String())
}
