package mapped

import (
	"io"
	"log/slog"
	"runtime"
)

// File is a memory mapping over the handle owner T.
//
// Exactly one OS mapping is live per File, its length fixed at
// construction. The mapping is torn down at most once: explicitly via
// IntoInner or Close, or implicitly by the garbage collector if the
// File becomes unreachable while still mapped.
type File[T Handle] struct {
	owner  T
	region region
	perm   Perm
	share  Share
	owned  bool
	done   bool // set once the region has been torn down
}

// New maps length bytes of owner with the given permission and sharing
// modes, taking ownership of owner: teardown via Close (or the
// finalizer) will also close owner if it implements io.Closer.
//
// length must be positive and owner's descriptor must refer to an
// object of at least length bytes; the OS reports a mapping failure
// otherwise. On failure owner is untouched and remains the caller's.
//
// The descriptor must stay open for the entire lifetime of the
// mapping. Closing it while mapped is a caller error this package
// cannot detect.
func New[T Handle](owner T, length int, perm Perm, share Share) (*File[T], error) {
	return newFile(owner, length, perm, share, true, 0)
}

// Borrow is like New but leaves ownership of owner with the caller:
// no teardown path will ever close it. The caller must keep owner's
// descriptor open until the mapping is torn down.
func Borrow[T Handle](owner T, length int, perm Perm, share Share) (*File[T], error) {
	return newFile(owner, length, perm, share, false, 0)
}

func newFile[T Handle](owner T, length int, perm Perm, share Share, owned bool, extra int) (*File[T], error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}

	r, err := mapRegion(int(owner.Fd()), length, perm, share, extra)
	if err != nil {
		return nil, err
	}

	f := &File[T]{
		owner:  owner,
		region: r,
		perm:   perm,
		share:  share,
		owned:  owned,
	}
	runtime.SetFinalizer(f, (*File[T]).finalize)
	return f, nil
}

// Slice returns the mapped bytes. The slice spans exactly the length
// the mapping was constructed with, and is valid until teardown; after
// teardown it is nil.
//
// The returned slice aliases kernel-managed memory. It must not be
// retained past teardown — and implicit teardown counts: if the slice
// outlives the last reference to the File, the finalizer may unmap
// under it. Keep the File reachable (or use runtime.KeepAlive) for as
// long as the slice is in use.
func (f *File[T]) Slice() []byte {
	return f.region.data
}

// MutSlice returns the mapped bytes for writing. It fails with
// ErrUnmapped after teardown and ErrReadonly on a Readonly mapping;
// Unmapped is the terminal state, so it wins when both apply.
//
// Writers require external synchronization against concurrent readers
// of Slice.
func (f *File[T]) MutSlice() ([]byte, error) {
	if f.done {
		return nil, ErrUnmapped
	}
	if f.perm == Readonly {
		return nil, ErrReadonly
	}
	return f.region.data, nil
}

// Len returns the mapped length in bytes, or 0 after teardown.
func (f *File[T]) Len() int {
	return len(f.region.data)
}

// IsEmpty reports whether the mapping no longer spans any bytes.
func (f *File[T]) IsEmpty() bool {
	return len(f.region.data) == 0
}

// Mode returns the permission mode the mapping was constructed with.
func (f *File[T]) Mode() Perm {
	return f.perm
}

// Sharing returns the sharing mode the mapping was constructed with.
func (f *File[T]) Sharing() Share {
	return f.share
}

// Writable reports whether the pages were mapped with write
// permission.
func (f *File[T]) Writable() bool {
	return f.perm.writable()
}

// Owner returns the handle owner the mapping was derived from, without
// transferring ownership.
func (f *File[T]) Owner() T {
	return f.owner
}

// Advise applies an access-pattern hint over the full mapped range.
// Advice is never safety-critical: the mapping remains fully usable if
// the hint fails.
func (f *File[T]) Advise(a Advice) error {
	if f.done {
		return ErrUnmapped
	}
	return f.region.advise(a)
}

// WithAdvice is the builder-style form of Advise, for chaining after
// construction:
//
//	m, err := mapped.New(f, n, mapped.Readonly, mapped.Shared)
//	if err == nil {
//	    m, err = m.WithAdvice(mapped.AdviceSequential)
//	}
//
// On failure the wrapper is returned intact alongside the error.
func (f *File[T]) WithAdvice(a Advice) (*File[T], error) {
	err := f.Advise(a)
	return f, err
}

// Flush writes dirty pages back to the backing object according to
// mode. For Readonly, CopyOnWrite and Private mappings there is
// nothing to carry back and Flush succeeds without a syscall.
//
// A failed flush never invalidates the mapping.
func (f *File[T]) Flush(mode Flush) error {
	if f.done {
		return ErrUnmapped
	}
	if !f.flushable() {
		return nil
	}
	return f.region.flush(mode)
}

// Sync is shorthand for Flush(FlushSync).
func (f *File[T]) Sync() error {
	return f.Flush(FlushSync)
}

// SyncAsync is shorthand for Flush(FlushAsync).
func (f *File[T]) SyncAsync() error {
	return f.Flush(FlushAsync)
}

func (f *File[T]) flushable() bool {
	return f.perm == ReadWrite && f.share == Shared
}

// Lock locks the mapped pages in memory, preventing them from being
// swapped out.
func (f *File[T]) Lock() error {
	if f.done {
		return ErrUnmapped
	}
	return f.region.lock()
}

// Unlock releases a previous Lock.
func (f *File[T]) Unlock() error {
	if f.done {
		return ErrUnmapped
	}
	return f.region.unlock()
}

// IntoInner unmaps the region and yields the handle owner back to the
// caller, unclosed, regardless of whether the mapping owned it. If
// sync is true, dirty pages are flushed first; a flush failure leaves
// the mapping intact and usable.
//
// Teardown happens at most once: after a successful IntoInner any
// further call returns ErrUnmapped and the zero T. If the unmap itself
// fails the region's validity is undefined by the OS contract, so the
// address range is abandoned permanently, never retried or touched
// again, and the error is returned.
func (f *File[T]) IntoInner(sync bool) (T, error) {
	var zero T
	if f.done {
		return zero, ErrUnmapped
	}
	if sync {
		if err := f.Flush(FlushSync); err != nil {
			return zero, err
		}
	}
	if err := f.teardown(false); err != nil {
		return zero, err
	}
	return f.owner, nil
}

// Close unmaps the region and, if the mapping owns its handle owner
// and the owner implements io.Closer, closes it too. Close after
// teardown is a no-op.
func (f *File[T]) Close() error {
	if f.done {
		return nil
	}
	return f.teardown(true)
}

// teardown is the single transition out of the mapped state. It marks
// the File done and clears the finalizer before unmapping, so that a
// failed unmap can never be retried, by any path.
func (f *File[T]) teardown(closeOwner bool) error {
	f.done = true
	runtime.SetFinalizer(f, nil)

	err := f.region.unmap()

	if closeOwner && f.owned {
		if c, ok := any(f.owner).(io.Closer); ok {
			if cerr := c.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}

// finalize is the implicit teardown path, invoked by the garbage
// collector when a still-mapped File becomes unreachable. It has no
// caller to report to, so failures are logged and swallowed.
func (f *File[T]) finalize() {
	if f.done {
		return
	}
	if err := f.teardown(true); err != nil {
		slog.Error("mapped: teardown failed during garbage collection, leaking region", "err", err)
	}
}
