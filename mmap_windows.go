//go:build windows

package mapped

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// region holds a mapped view plus the file-mapping object it was
// created from. The view is valid exactly until unmap succeeds.
type region struct {
	data    []byte         // Mapped memory region
	mapping windows.Handle // File mapping object
}

// protAccess translates the permission and sharing modes. Private
// writable mappings and CopyOnWrite both become write-copy views, the
// closest Windows equivalent of MAP_PRIVATE.
func protAccess(perm Perm, share Share) (prot, access uint32) {
	switch {
	case perm == Readonly:
		return windows.PAGE_READONLY, windows.FILE_MAP_READ
	case perm == CopyOnWrite || share == Private:
		return windows.PAGE_WRITECOPY, windows.FILE_MAP_COPY
	}
	return windows.PAGE_READWRITE, windows.FILE_MAP_WRITE
}

// mapRegion creates a file mapping object and maps a view of it. A
// negative handle value selects a pagefile-backed (anonymous) mapping.
// extra is unused on Windows.
func mapRegion(fd int, length int, perm Perm, share Share, extra int) (region, error) {
	handle := windows.InvalidHandle
	if fd >= 0 {
		handle = windows.Handle(fd)
	}

	prot, access := protAccess(perm, share)
	if handle == windows.InvalidHandle && perm.writable() {
		// Pagefile-backed mappings have no backing object to isolate
		// writes from, and reject PAGE_WRITECOPY.
		prot, access = windows.PAGE_READWRITE, windows.FILE_MAP_WRITE
	}

	maxSizeHigh := uint32(uint64(length) >> 32)
	maxSizeLow := uint32(length)

	mapping, err := windows.CreateFileMapping(handle, nil, prot, maxSizeHigh, maxSizeLow, nil)
	if err != nil {
		return region{}, &Error{Op: "CreateFileMapping", Err: err}
	}

	addr, err := windows.MapViewOfFile(mapping, access, 0, 0, uintptr(length))
	if err != nil {
		windows.CloseHandle(mapping)
		return region{}, &Error{Op: "MapViewOfFile", Err: err}
	}

	return region{
		data:    unsafe.Slice((*byte)(unsafe.Pointer(addr)), length),
		mapping: mapping,
	}, nil
}

// unmap releases the view and the mapping object. The slice is cleared
// before the syscall so the stale address is unreachable even if the
// unmap fails.
func (r *region) unmap() error {
	data := r.data
	r.data = nil
	if data == nil {
		return nil
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		if r.mapping != 0 {
			windows.CloseHandle(r.mapping)
			r.mapping = 0
		}
		return &Error{Op: "UnmapViewOfFile", Err: err}
	}

	if r.mapping != 0 {
		windows.CloseHandle(r.mapping)
		r.mapping = 0
	}
	return nil
}

func (r *region) flush(mode Flush) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.data)))
	if err := windows.FlushViewOfFile(addr, uintptr(len(r.data))); err != nil {
		return &Error{Op: "FlushViewOfFile", Err: err}
	}
	return nil
}

// advise is a no-op on Windows, which has no madvise equivalent for
// mapped views. Hints are never safety-critical, so success is
// reported.
func (r *region) advise(a Advice) error {
	return nil
}

func (r *region) lock() error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.data)))
	if err := windows.VirtualLock(addr, uintptr(len(r.data))); err != nil {
		return &Error{Op: "VirtualLock", Err: err}
	}
	return nil
}

func (r *region) unlock() error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(r.data)))
	if err := windows.VirtualUnlock(addr, uintptr(len(r.data))); err != nil {
		return &Error{Op: "VirtualUnlock", Err: err}
	}
	return nil
}
