//go:build unix

package mapped

import (
	"golang.org/x/sys/unix"
)

// ManagedFd owns a raw descriptor and closes it on Close. It is the
// owning counterpart of Fd, useful when a mapping should control the
// lifetime of a descriptor that has no higher-level wrapper.
type ManagedFd int

// Fd returns the raw descriptor value.
func (f ManagedFd) Fd() uintptr {
	return uintptr(f)
}

// Close closes the descriptor.
func (f ManagedFd) Close() error {
	return unix.Close(int(f))
}

// Dup duplicates the descriptor. The duplicate refers to the same open
// file description and is independently closed.
func (f ManagedFd) Dup() (ManagedFd, error) {
	fd, err := unix.Dup(int(f))
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(fd)
	return ManagedFd(fd), nil
}

// Duplicate derives an owned descriptor from any handle, leaving the
// original untouched. The returned ManagedFd keeps the underlying open
// file description alive even after the original owner closes.
func Duplicate(h Handle) (ManagedFd, error) {
	return ManagedFd(h.Fd()).Dup()
}
