package mapped

// Error represents a mapping error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "mapped: " + e.Op + ": " + e.Err.Error()
	}
	return "mapped: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common errors
var (
	// ErrInvalidSize is returned when a mapping is requested with a
	// zero or negative length.
	ErrInvalidSize = &Error{Op: "invalid length"}

	// ErrReadonly is returned when a writable view is requested from a
	// Readonly mapping.
	ErrReadonly = &Error{Op: "mapping is read-only"}

	// ErrUnmapped is returned when a mapping is used after it has been
	// torn down. Teardown happens at most once per File.
	ErrUnmapped = &Error{Op: "mapping already unmapped"}

	// ErrSizeMismatch is returned when the mapping length is not a
	// multiple of the requested view's element size.
	ErrSizeMismatch = &Error{Op: "length not a multiple of element size"}

	// ErrBadAlignment is returned when the mapping base address does
	// not satisfy the requested view's element alignment.
	ErrBadAlignment = &Error{Op: "base address not aligned for element type"}

	// ErrPageSize is returned when a length that must be page-aligned
	// is not a multiple of the system page size.
	ErrPageSize = &Error{Op: "length not a multiple of page size"}
)
