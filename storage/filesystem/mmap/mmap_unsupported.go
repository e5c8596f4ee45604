//go:build !darwin && !linux

package mmap

import (
	"github.com/go-git/go-billy/v5"
)

// Map always fails with ErrUnsupported on this platform.
func Map(f billy.File) (*Reader, error) {
	return nil, ErrUnsupported
}
