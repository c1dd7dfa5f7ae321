package mapped

import "unsafe"

// View reinterprets the mapped bytes as a slice of E with
// Len()/sizeof(E) elements. It fails with ErrSizeMismatch when the
// mapping length is not a multiple of E's size, and with
// ErrBadAlignment when the mapping base does not satisfy E's alignment
// (mapping bases are page-aligned, so this only occurs for types with
// over-page alignment requirements).
//
// E must not contain pointers: the mapped bytes are outside the Go
// heap and the garbage collector must never scan values placed there.
//
// The returned slice aliases the mapping and is invalidated by
// teardown, exactly like Slice — including implicit teardown: the
// File must stay reachable for as long as the view is in use.
func View[E any, T Handle](f *File[T]) ([]E, error) {
	if f.done {
		return nil, ErrUnmapped
	}
	return viewOf[E](f.region.data)
}

// MutView is the writable form of View. It fails with ErrUnmapped
// after teardown and ErrReadonly on a Readonly mapping.
func MutView[E any, T Handle](f *File[T]) ([]E, error) {
	if f.done {
		return nil, ErrUnmapped
	}
	if f.perm == Readonly {
		return nil, ErrReadonly
	}
	return View[E](f)
}

func viewOf[E any](data []byte) ([]E, error) {
	var zero E
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return nil, ErrSizeMismatch
	}
	if len(data)%size != 0 {
		return nil, ErrSizeMismatch
	}

	base := unsafe.Pointer(unsafe.SliceData(data))
	if uintptr(base)%unsafe.Alignof(zero) != 0 {
		return nil, ErrBadAlignment
	}
	return unsafe.Slice((*E)(base), len(data)/size), nil
}
