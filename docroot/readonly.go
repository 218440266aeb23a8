package docroot

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

type readOnlyFS struct {
	billy.Filesystem
}

// ReadOnly wraps fs so that every mutating call fails with billy.ErrReadOnly.
func ReadOnly(fs billy.Filesystem) billy.Filesystem {
	if ro, ok := fs.(readOnlyFS); ok {
		return ro
	}
	return readOnlyFS{fs}
}

func (fs readOnlyFS) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}

func (fs readOnlyFS) Create(string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (fs readOnlyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&writeFlags != 0 {
		return nil, billy.ErrReadOnly
	}
	return fs.Filesystem.OpenFile(filename, flag, perm)
}

func (fs readOnlyFS) Rename(string, string) error        { return billy.ErrReadOnly }
func (fs readOnlyFS) Remove(string) error                { return billy.ErrReadOnly }
func (fs readOnlyFS) MkdirAll(string, os.FileMode) error { return billy.ErrReadOnly }
func (fs readOnlyFS) Symlink(string, string) error       { return billy.ErrReadOnly }

func (fs readOnlyFS) TempFile(string, string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (fs readOnlyFS) Chroot(path string) (billy.Filesystem, error) {
	sub, err := fs.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return readOnlyFS{sub}, nil
}
