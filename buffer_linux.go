//go:build linux

package mapped

import (
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Pair is a dual mapping over the same descriptor: a write view and a
// read view of the same underlying bytes, placed back to back in one
// reserved address range. Writes through Writer are immediately
// visible through Reader.
//
// The two views are built by reserving 2x length of inaccessible
// address space and overlaying fixed-address shared mappings of the
// descriptor's first length bytes onto each half.
type Pair struct {
	owner Handle
	base  unsafe.Pointer
	w, r  []byte
	done  bool
}

// NewPair maps length bytes of owner twice, returning the paired
// write/read views. length must be a positive multiple of the system
// page size and the descriptor must refer to an object of at least
// length bytes.
//
// The owner is borrowed, never closed; its descriptor must stay open
// until the Pair is closed.
func NewPair(owner Handle, length int) (*Pair, error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}
	if length%unix.Getpagesize() != 0 {
		return nil, ErrPageSize
	}

	fd := int(owner.Fd())
	span := uintptr(length) * 2

	// Reserve the full range so nothing else can land between the
	// halves, then overlay the real views with MAP_FIXED.
	base, err := unix.MmapPtr(-1, 0, nil, span,
		unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	rdAddr := unsafe.Add(base, length)
	if _, err := unix.MmapPtr(fd, 0, rdAddr, uintptr(length),
		unix.PROT_READ, unix.MAP_SHARED|unix.MAP_FIXED); err != nil {
		unix.MunmapPtr(base, span)
		return nil, &Error{Op: "mmap", Err: err}
	}
	if _, err := unix.MmapPtr(fd, 0, base, uintptr(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_FIXED); err != nil {
		unix.MunmapPtr(base, span)
		return nil, &Error{Op: "mmap", Err: err}
	}

	p := &Pair{
		owner: owner,
		base:  base,
		w:     unsafe.Slice((*byte)(base), length),
		r:     unsafe.Slice((*byte)(rdAddr), length),
	}
	runtime.SetFinalizer(p, (*Pair).finalize)
	return p, nil
}

// Writer returns the write view, or nil after Close.
func (p *Pair) Writer() []byte {
	return p.w
}

// Reader returns the read view, or nil after Close. Writing through it
// faults: the pages are mapped read-only.
func (p *Pair) Reader() []byte {
	return p.r
}

// Len returns the length of each view in bytes, or 0 after Close.
func (p *Pair) Len() int {
	return len(p.w)
}

// Close unmaps both views and the reservation in one call. The owner
// stays open. Close after teardown is a no-op.
func (p *Pair) Close() error {
	if p.done {
		return nil
	}
	p.done = true
	runtime.SetFinalizer(p, nil)

	span := uintptr(len(p.w)) * 2
	base := p.base
	p.base = nil
	p.w, p.r = nil, nil

	if err := unix.MunmapPtr(base, span); err != nil {
		return &Error{Op: "munmap", Err: err}
	}
	return nil
}

func (p *Pair) finalize() {
	if p.done {
		return
	}
	if err := p.Close(); err != nil {
		slog.Error("mapped: pair teardown failed during garbage collection, leaking region", "err", err)
	}
}
