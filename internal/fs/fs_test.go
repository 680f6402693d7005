package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0755))

	fpath := filepath.Join(dir, "test.blk")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())

	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.NoError(t, f.Close())

	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	tf, tmpName, err := lfs.CreateTemp(dir, "test.blk.tmp-*")
	require.NoError(t, err)
	require.NoError(t, tf.Close())

	assert.NoError(t, lfs.Rename(tmpName, fpath))
	info, err = lfs.Stat(fpath)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	assert.NoError(t, SyncDir(lfs, dir))

	assert.NoError(t, lfs.Remove(fpath))
	_, err = lfs.Stat(fpath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_ShortWrite(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("faulty", Fault{FailAfterBytes: 5, ReadLimit: -1})

	fpath := filepath.Join(tmp, "faulty.blk")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	n, err := f.Write([]byte("hello world"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(5), ffs.GetWritten())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFaultyFS_ReadLimit(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "short.blk")
	require.NoError(t, os.WriteFile(fpath, []byte("0123456789"), 0644))

	ffs := NewFaultyFS(nil)
	ffs.AddRule("short", Fault{FailAfterBytes: -1, ReadLimit: 4})

	f, err := ffs.OpenFile(fpath, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 10)
	n, err := f.ReadAt(buf, 0)
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "0123", string(buf[:n]))
}

func TestFaultyFS_FailOnOpen(t *testing.T) {
	tmp := t.TempDir()
	custom := errors.New("permission denied")

	ffs := NewFaultyFS(nil)
	ffs.AddRule("locked", Fault{FailOnOpen: true, Err: custom})

	_, err := ffs.OpenFile(filepath.Join(tmp, "locked.blk"), os.O_CREATE|os.O_WRONLY, 0644)
	assert.ErrorIs(t, err, custom)

	_, _, err = ffs.CreateTemp(tmp, "locked.blk.tmp-*")
	assert.ErrorIs(t, err, custom)

	// Unmatched names pass through.
	f, err := ffs.OpenFile(filepath.Join(tmp, "open.blk"), os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestFaultyFS_SyncAndClose(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("sync", Fault{FailAfterBytes: -1, ReadLimit: -1, FailOnSync: true})
	ffs.AddRule("close", Fault{FailAfterBytes: -1, ReadLimit: -1, FailOnClose: true})

	f, err := ffs.OpenFile(filepath.Join(tmp, "sync.blk"), os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), ErrInjected)
	assert.NoError(t, f.Close())

	f, err = ffs.OpenFile(filepath.Join(tmp, "close.blk"), os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	assert.NoError(t, f.Sync())
	assert.ErrorIs(t, f.Close(), ErrInjected)

	ffs.ClearRules()
	f, err = ffs.OpenFile(filepath.Join(tmp, "close.blk"), os.O_WRONLY, 0644)
	require.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestFaultyFS_Delegation(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, ffs.MkdirAll(dir, 0755))

	fpath := filepath.Join(dir, "test.blk")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.NoError(t, ffs.Rename(fpath, fpath+".renamed"))
	_, err = ffs.Stat(fpath + ".renamed")
	assert.NoError(t, err)

	entries, err := ffs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.NoError(t, ffs.Remove(fpath+".renamed"))
}
