package mapped

// Perm selects the memory protection of the mapped pages.
type Perm int

const (
	// ReadWrite maps the pages for both reading and writing.
	ReadWrite Perm = iota

	// Readonly maps the pages for reading only. MutSlice and MutView
	// fail on a Readonly mapping.
	Readonly

	// CopyOnWrite maps the pages for reading and writing, but writes
	// are visible only through this mapping and are never propagated
	// to the backing object. Implies a private mapping.
	CopyOnWrite
)

func (p Perm) String() string {
	switch p {
	case ReadWrite:
		return "read-write"
	case Readonly:
		return "read-only"
	case CopyOnWrite:
		return "copy-on-write"
	}
	return "unknown"
}

// writable reports whether the pages are mapped with write protection.
func (p Perm) writable() bool {
	return p != Readonly
}

// Share selects whether updates to the mapping are carried through to
// the backing object and visible to other mappings of it.
type Share int

const (
	// Shared carries updates through to the backing object.
	Shared Share = iota

	// Private keeps updates local to this mapping.
	Private
)

func (s Share) String() string {
	switch s {
	case Shared:
		return "shared"
	case Private:
		return "private"
	}
	return "unknown"
}

// Advice is a non-binding hint to the kernel about the expected access
// pattern of the mapped pages. It maps onto madvise(2) where available.
type Advice int

const (
	// AdviceNormal resets to the default access-pattern assumption.
	AdviceNormal Advice = iota

	// AdviceSequential hints that pages will be accessed sequentially.
	AdviceSequential

	// AdviceRandom hints that pages will be accessed in random order.
	AdviceRandom

	// AdviceWillNeed hints that pages will be needed soon.
	AdviceWillNeed

	// AdviceDontNeed hints that pages won't be needed soon.
	AdviceDontNeed
)

func (a Advice) String() string {
	switch a {
	case AdviceNormal:
		return "normal"
	case AdviceSequential:
		return "sequential"
	case AdviceRandom:
		return "random"
	case AdviceWillNeed:
		return "willneed"
	case AdviceDontNeed:
		return "dontneed"
	}
	return "unknown"
}

// Flush controls how dirty pages are written back to the backing
// object. It maps onto the msync(2) flag set.
type Flush int

const (
	// FlushSync blocks until the write-back completes.
	FlushSync Flush = iota

	// FlushAsync schedules the write-back and returns immediately.
	FlushAsync

	// FlushInvalidate additionally invalidates other mappings of the
	// same region so they pick up the written data.
	FlushInvalidate

	// FlushInvalidateAsync is the asynchronous form of FlushInvalidate.
	FlushInvalidateAsync
)

func (m Flush) String() string {
	switch m {
	case FlushSync:
		return "sync"
	case FlushAsync:
		return "async"
	case FlushInvalidate:
		return "invalidate"
	case FlushInvalidateAsync:
		return "invalidate-async"
	}
	return "unknown"
}
