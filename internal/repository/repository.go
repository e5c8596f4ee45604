// Package repository locates the .hg directory of a local repository.
package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/go-hg/go-hg/storage/filesystem"
	"github.com/go-hg/go-hg/utils/ioutil"
	"github.com/go-hg/go-hg/utils/trace"
)

const (
	dotHGPath      = ".hg"
	sharedPathFile = "sharedpath"
)

// ErrRepositoryNotExists is returned when no .hg directory is found.
var ErrRepositoryNotExists = errors.New("repository does not exist")

// PlainOpen opens the repository at path. With detect set, parent
// directories are searched for a .hg directory as well.
func PlainOpen(path string, detect bool, o filesystem.Options) (*filesystem.Storage, billy.Filesystem, error) {
	dot, wt, err := DotHGToOSFilesystems(path, detect)
	if err != nil {
		return nil, nil, err
	}

	shared, err := SharedDirectory(dot)
	if err != nil {
		return nil, nil, err
	}

	if shared != nil {
		dot = shared
	}

	return filesystem.NewStorageWithOptions(dot, o), wt, nil
}

// DotHGToOSFilesystems returns the .hg directory and the working tree
// holding it.
func DotHGToOSFilesystems(path string, detect bool) (dot, wt billy.Filesystem, err error) {
	path, err = replaceTildeWithHome(path)
	if err != nil {
		return nil, nil, err
	}

	if path, err = filepath.Abs(path); err != nil {
		return nil, nil, err
	}

	var fs billy.Filesystem
	for {
		fs = osfs.New(path, osfs.WithBoundOS())

		fi, err := fs.Stat(dotHGPath)
		if err == nil && fi.IsDir() {
			break
		}

		if err != nil && !os.IsNotExist(err) {
			return nil, nil, err
		}

		if detect {
			if dir := filepath.Dir(path); dir != path {
				path = dir
				continue
			}
		}

		return nil, nil, ErrRepositoryNotExists
	}

	trace.General.Printf("repository: found %s in %s", dotHGPath, path)

	dot, err = fs.Chroot(dotHGPath)
	return dot, fs, err
}

// SharedDirectory returns the .hg directory named by the sharedpath file
// of a repository created with hg share, nil when dot is not shared.
func SharedDirectory(dot billy.Filesystem) (shared billy.Filesystem, err error) {
	f, err := dot.Open(sharedPathFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer ioutil.CheckClose(f, &err)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	path := strings.TrimSpace(string(b))
	if path == "" {
		return nil, fmt.Errorf("%s: empty path", sharedPathFile)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(dot.Root(), path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", sharedPathFile, err)
	}

	trace.General.Printf("repository: shared store at %s", path)
	return osfs.New(path, osfs.WithBoundOS()), nil
}

func replaceTildeWithHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	slash := strings.Index(path, "/")
	switch {
	case path == "~" || slash == 1:
		home, err := os.UserHomeDir()
		if err != nil {
			return path, err
		}
		return strings.Replace(path, "~", home, 1), nil
	case slash > 1:
		u, err := user.Lookup(path[1:slash])
		if err != nil {
			return path, err
		}
		return strings.Replace(path, path[:slash], u.HomeDir, 1), nil
	}

	return path, nil
}
