//go:build linux

package mapped

import (
	"os"

	"golang.org/x/sys/unix"
)

// MemFile is an anonymous in-memory file created with memfd_create(2).
// It lives entirely in RAM, has no filesystem presence, and its
// descriptor can be mapped, truncated, read and written like any
// regular file. Useful as a temporary buffer wherever a descriptor is
// required, and as a shareable backing object for mappings.
type MemFile struct {
	*os.File
}

// NewMemFile creates a memory file and sizes it to size bytes. The
// name is only a debugging label (it appears in /proc/self/fd); it
// does not need to be unique.
func NewMemFile(name string, size int64) (*MemFile, error) {
	return newMemFile(name, size, unix.MFD_CLOEXEC)
}

// NewHugeMemFile creates a memory file backed by huge pages of the
// size selected by flag. size must be a multiple of that page size.
func NewHugeMemFile(name string, size int64, flag HugeFlag) (*MemFile, error) {
	return newMemFile(name, size, unix.MFD_CLOEXEC|unix.MFD_HUGETLB|int(flag))
}

func newMemFile(name string, size int64, flags int) (*MemFile, error) {
	fd, err := unix.MemfdCreate(name, flags)
	if err != nil {
		return nil, &Error{Op: "memfd_create", Err: err}
	}

	f := os.NewFile(uintptr(fd), name)
	if size > 0 {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &MemFile{f}, nil
}
