//go:build unix

package mapped

import (
	"golang.org/x/sys/unix"
)

// region holds the raw result of a successful mmap(2) call. It is
// valid memory exactly from creation until unmap succeeds; after that
// the old address must never be touched again.
type region struct {
	data []byte // Mapped memory region
}

func (p Perm) prot() int {
	if p == Readonly {
		return unix.PROT_READ
	}
	return unix.PROT_READ | unix.PROT_WRITE
}

// mapFlags translates the sharing mode. CopyOnWrite forces a private
// mapping: that is what gives writes their mapping-local visibility.
func mapFlags(perm Perm, share Share) int {
	if perm == CopyOnWrite || share == Private {
		return unix.MAP_PRIVATE
	}
	return unix.MAP_SHARED
}

func (m Flush) ms() int {
	switch m {
	case FlushAsync:
		return unix.MS_ASYNC
	case FlushInvalidate:
		return unix.MS_SYNC | unix.MS_INVALIDATE
	case FlushInvalidateAsync:
		return unix.MS_ASYNC | unix.MS_INVALIDATE
	}
	return unix.MS_SYNC
}

func (a Advice) madv() int {
	switch a {
	case AdviceSequential:
		return unix.MADV_SEQUENTIAL
	case AdviceRandom:
		return unix.MADV_RANDOM
	case AdviceWillNeed:
		return unix.MADV_WILLNEED
	case AdviceDontNeed:
		return unix.MADV_DONTNEED
	}
	return unix.MADV_NORMAL
}

// mapRegion issues the mmap(2) request. extra carries platform flags
// such as MAP_HUGETLB; a negative fd selects an anonymous mapping.
func mapRegion(fd int, length int, perm Perm, share Share, extra int) (region, error) {
	flags := mapFlags(perm, share) | extra
	if fd < 0 {
		fd = -1
		flags |= unix.MAP_ANON
	}

	data, err := unix.Mmap(fd, 0, length, perm.prot(), flags)
	if err != nil {
		return region{}, &Error{Op: "mmap", Err: err}
	}
	return region{data: data}, nil
}

// unmap releases the region. The slice is cleared before the syscall
// so the stale address is unreachable even if munmap fails.
func (r *region) unmap() error {
	data := r.data
	r.data = nil
	if data == nil {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		return &Error{Op: "munmap", Err: err}
	}
	return nil
}

func (r *region) flush(mode Flush) error {
	if err := unix.Msync(r.data, mode.ms()); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

func (r *region) advise(a Advice) error {
	if err := unix.Madvise(r.data, a.madv()); err != nil {
		return &Error{Op: "madvise", Err: err}
	}
	return nil
}

func (r *region) lock() error {
	if err := unix.Mlock(r.data); err != nil {
		return &Error{Op: "mlock", Err: err}
	}
	return nil
}

func (r *region) unlock() error {
	if err := unix.Munlock(r.data); err != nil {
		return &Error{Op: "munlock", Err: err}
	}
	return nil
}
