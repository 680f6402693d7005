package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/nvram/internal/fs"
	"github.com/hupe1980/nvram/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root   string
	fsys   fs.FileSystem
	mmap   bool
	atomic bool
	perm   os.FileMode
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithFileSystem sets the filesystem used for reads and writes.
// Tests inject fs.FaultyFS here.
func WithFileSystem(fsys fs.FileSystem) LocalOption {
	return func(s *LocalStore) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithMmap reads blobs through a read-only memory mapping instead of a file
// descriptor. Mapping bypasses the configured FileSystem.
func WithMmap() LocalOption {
	return func(s *LocalStore) {
		s.mmap = true
	}
}

// WithAtomicWrites writes blobs to a temporary file that is renamed over the
// target on Close. A failed write then leaves the previous blob intact.
func WithAtomicWrites() LocalOption {
	return func(s *LocalStore) {
		s.atomic = true
	}
}

// WithFileMode sets the permission bits of created blobs (default 0644).
func WithFileMode(perm os.FileMode) LocalOption {
	return func(s *LocalStore) {
		s.perm = perm
	}
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string, optFns ...LocalOption) *LocalStore {
	s := &LocalStore{
		root: root,
		fsys: fs.Default,
		perm: 0644,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Root returns the directory the store is rooted at.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, name)
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	path := s.path(name)
	if s.mmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		return &mappedBlob{m: m}, nil
	}

	f, err := s.fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileBlob{f: f, size: info.Size()}, nil
}

// Create creates or truncates a blob for writing.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	if err := s.fsys.MkdirAll(s.root, 0755); err != nil {
		return nil, err
	}
	path := s.path(name)
	if !s.atomic {
		f, err := s.fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.perm)
		if err != nil {
			return nil, err
		}
		return &fileWritableBlob{f: f}, nil
	}

	f, tmpName, err := s.fsys.CreateTemp(s.root, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &atomicWritableBlob{
		f:       f,
		fsys:    s.fsys,
		tmpName: tmpName,
		target:  path,
		dir:     s.root,
		perm:    s.perm,
	}, nil
}

// Put writes a blob in one call.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		abort(w)
		return err
	}
	if err := w.Sync(); err != nil {
		abort(w)
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fsys.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the names of all blobs with the given prefix.
// Temporary files left by interrupted atomic writes are skipped.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := s.fsys.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.Contains(e.Name(), ".tmp-") {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func abort(w WritableBlob) {
	if a, ok := w.(Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = w.Close()
}

type fileBlob struct {
	f    fs.File
	size int64
}

func (b *fileBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.f.ReadAt(p, off)
}

func (b *fileBlob) Close() error {
	return b.f.Close()
}

func (b *fileBlob) Size() int64 {
	return b.size
}

type mappedBlob struct {
	m *mmap.Mapping
}

func (b *mappedBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *mappedBlob) Close() error {
	return b.m.Close()
}

func (b *mappedBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *mappedBlob) Bytes() ([]byte, error) {
	return b.m.Slice(0, b.m.Size())
}

// fileWritableBlob writes straight into the target file.
type fileWritableBlob struct {
	f fs.File
}

func (w *fileWritableBlob) Write(p []byte) (int, error) { return w.f.Write(p) }
func (w *fileWritableBlob) Sync() error                 { return w.f.Sync() }
func (w *fileWritableBlob) Close() error                { return w.f.Close() }

// Abort closes the file. The target has already been truncated, so what was
// written so far stays on disk.
func (w *fileWritableBlob) Abort() error { return w.f.Close() }

// atomicWritableBlob writes to a temp file and renames it into place on Close.
type atomicWritableBlob struct {
	f       fs.File
	fsys    fs.FileSystem
	tmpName string
	target  string
	dir     string
	perm    os.FileMode
	done    bool
}

func (w *atomicWritableBlob) Write(p []byte) (int, error) {
	if w.done {
		return 0, ErrClosed
	}
	return w.f.Write(p)
}

func (w *atomicWritableBlob) Sync() error {
	if w.done {
		return ErrClosed
	}
	return w.f.Sync()
}

func (w *atomicWritableBlob) Close() error {
	if w.done {
		return ErrClosed
	}
	w.done = true
	if err := w.f.Close(); err != nil {
		_ = w.fsys.Remove(w.tmpName)
		return err
	}
	_ = w.fsys.Chmod(w.tmpName, w.perm) // best-effort; CreateTemp uses 0600
	if err := w.fsys.Rename(w.tmpName, w.target); err != nil {
		_ = w.fsys.Remove(w.tmpName)
		return err
	}
	// Best-effort: fsync the directory so the rename is durable on POSIX.
	_ = fs.SyncDir(w.fsys, w.dir)
	return nil
}

func (w *atomicWritableBlob) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	_ = w.f.Close()
	return w.fsys.Remove(w.tmpName)
}
