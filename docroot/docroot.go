// Package docroot is the served directory, shared by every transport.
package docroot

import (
	"errors"
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// IndexFile is tried once when a path does not name a readable file.
const IndexFile = "index.html"

var ErrNotFound = errors.New("docroot: not found")

// Root resolves request paths against a filesystem. Every path is cleaned
// as if rooted at "/" before use, so ".." can never climb out of the root.
type Root struct {
	fs billy.Filesystem
}

func New(fs billy.Filesystem) *Root {
	return &Root{fs: fs}
}

// Dir serves the on-disk directory dir, which should already be absolute.
func Dir(dir string) *Root {
	return New(osfs.New(dir))
}

// Path is where the root lives on its filesystem.
func (r *Root) Path() string {
	return r.fs.Root()
}

// ReadOnly exposes the root to transports that speak a full filesystem
// protocol.
func (r *Root) ReadOnly() billy.Filesystem {
	return ReadOnly(r.fs)
}

// ReadFile reads exactly name. A directory counts as a failed read.
func (r *Root) ReadFile(name string) ([]byte, error) {
	name = path.Clean("/" + name)
	fi, err := r.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("docroot: %s is a directory", name)
	}
	return util.ReadFile(r.fs, name)
}

// Lookup reads name, or name/index.html if that fails. The index fallback
// happens at most once; if both reads fail the result is ErrNotFound.
func (r *Root) Lookup(name string) ([]byte, error) {
	target := name
	tryingIndex := false
	for {
		data, err := r.ReadFile(target)
		if err == nil {
			return data, nil
		}
		if tryingIndex {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		tryingIndex = true
		target = name + "/" + IndexFile
	}
}
