//go:build unix

package mmap

import "golang.org/x/sys/unix"

func mapFile(fd uintptr, size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(fd), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
