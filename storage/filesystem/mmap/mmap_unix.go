//go:build darwin || linux

package mmap

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sys/unix"
)

// Map creates a read-only mapping of the whole of f.
func Map(f billy.File) (*Reader, error) {
	if f == nil {
		return nil, ErrNilFile
	}

	fd, err := fileDescriptor(f)
	if err != nil {
		return nil, err
	}

	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}

	if st.Size == 0 {
		return newReader(nil, nil), nil
	}

	data, err := unix.Mmap(int(fd), 0, int(st.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}

	return newReader(data, func() error {
		return unix.Munmap(data)
	}), nil
}
