// Package mapped provides a safe, generic wrapper over memory-mapped
// file I/O.
//
// A File[T] couples an OS memory mapping with the handle-owning object
// it was derived from (anything with an Fd() uintptr method, such as
// *os.File), and guarantees the mapping is torn down before or as that
// object is released.
//
// Key features:
//   - Generic over the handle owner: map *os.File, a raw Fd, a MemFile,
//     or any custom descriptor-owning type
//   - Owning and borrowing construction (New vs Borrow)
//   - Read-only, read-write and copy-on-write permission modes
//   - Shared and private mappings
//   - Kernel access-pattern advice (madvise) with builder-style chaining
//   - Typed slice views over the mapped bytes with size and alignment
//     validation
//   - Deterministic teardown: explicit via IntoInner/Close, implicit via
//     a garbage-collection finalizer
//   - Linux extras: huge pages, memfd-backed memory files, and dual
//     writer/reader mappings over one descriptor
//
// Basic usage:
//
//	f, err := os.OpenFile("data.bin", os.O_RDWR, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := mapped.New(f, 4096, mapped.ReadWrite, mapped.Shared)
//	if err != nil {
//	    f.Close()
//	    log.Fatal(err)
//	}
//
//	buf, err := m.MutSlice()
//	if err != nil {
//	    m.Close()
//	    log.Fatal(err)
//	}
//	copy(buf, []byte("hello"))
//
//	// Flush dirty pages and get the file back, unmapped.
//	f, err = m.IntoInner(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.Close()
//
// A mapping's length is fixed at construction and the mapping can never
// be re-established after teardown: the lifecycle is strictly
// Mapped -> Unmapped.
//
// Concurrency: the mapped bytes may be read from any number of
// goroutines concurrently. Writers require external synchronization,
// both against readers and against teardown. Construction and teardown
// of a single File are not safe to interleave from multiple goroutines.
//
// Slices returned by Slice, MutSlice and the typed views alias the
// mapping: they are invalidated by teardown, and implicit teardown
// counts — a slice must never outlive the last reference to its File,
// or the finalizer may unmap the memory under it.
package mapped
