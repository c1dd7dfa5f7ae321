//go:build linux

package mapped

import (
	"golang.org/x/sys/unix"
)

// NewHuge is like New but backs the mapping with huge pages. flag
// selects the page size (see HugeFlag); HugeDefault uses the kernel's
// default huge-page size.
//
// length must be a multiple of the selected huge-page size and the
// descriptor must refer to an object that supports hugetlb mappings
// (such as a NewHugeMemFile, or a file on a hugetlbfs mount); the OS
// reports a mapping failure otherwise.
func NewHuge[T Handle](owner T, length int, perm Perm, share Share, flag HugeFlag) (*File[T], error) {
	return newFile(owner, length, perm, share, true, unix.MAP_HUGETLB|int(flag))
}
