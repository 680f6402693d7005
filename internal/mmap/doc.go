// Package mmap provides read-only memory-mapped file access.
//
// The local blob store can map a stored block instead of reading it through
// a file descriptor:
//
//	m, err := mmap.Open("nvram.blk")
//	if err != nil { ... }
//	defer m.Close()
//
//	n, err := m.ReadAt(buf, 0)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) via golang.org/x/sys/unix
//   - Windows: CreateFileMapping/MapViewOfFile via golang.org/x/sys/windows
//
// Empty files are never mapped; their Mapping has no data and ReadAt
// returns io.EOF.
package mmap
