package mapped

// Handle is any object capable of exposing a raw OS file descriptor
// (or, on Windows, a file handle). *os.File satisfies it.
//
// The method is expected to be pure: it must not open, close or
// otherwise mutate the underlying resource.
type Handle interface {
	Fd() uintptr
}

// Fd is a raw descriptor with no ownership semantics. It aliases an
// open descriptor owned elsewhere; closing it is the original owner's
// business.
type Fd uintptr

// Fd returns the raw descriptor value.
func (f Fd) Fd() uintptr {
	return uintptr(f)
}

// Anonymous is the pseudo-handle for mappings not backed by any file.
// Its descriptor value is invalid in every other context; it should
// only be passed to the constructors of this package.
type Anonymous struct{}

// Fd returns the invalid descriptor used for anonymous mappings.
func (Anonymous) Fd() uintptr {
	return ^uintptr(0)
}
