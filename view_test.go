package mapped

import (
	"encoding/binary"
	"os"
	"testing"
)

func TestViewSizeMismatch(t *testing.T) {
	// 10 bytes is not a multiple of a 4-byte element.
	m, err := New(Anonymous{}, 10, ReadWrite, Private)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if _, err := View[uint32](m); err != ErrSizeMismatch {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestViewElementCount(t *testing.T) {
	m, err := New(Anonymous{}, 16, ReadWrite, Private)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	v, err := View[uint32](m)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 4 {
		t.Errorf("element count mismatch: got %d, want 4", len(v))
	}

	v64, err := View[uint64](m)
	if err != nil {
		t.Fatal(err)
	}
	if len(v64) != 2 {
		t.Errorf("element count mismatch: got %d, want 2", len(v64))
	}
}

func TestMutViewWriteThrough(t *testing.T) {
	m, err := New(Anonymous{}, 16, ReadWrite, Private)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	v, err := MutView[uint32](m)
	if err != nil {
		t.Fatal(err)
	}
	v[0] = 0xDEADBEEF
	v[3] = 42

	raw := m.Slice()
	if got := binary.NativeEndian.Uint32(raw[0:4]); got != 0xDEADBEEF {
		t.Errorf("typed write not visible in byte view: got %#x", got)
	}
	if got := binary.NativeEndian.Uint32(raw[12:16]); got != 42 {
		t.Errorf("typed write not visible in byte view: got %d", got)
	}
}

func TestMutViewReadonly(t *testing.T) {
	data := make([]byte, 16)
	f := createFile(t, data, os.O_RDONLY)

	m, err := New(f, 16, Readonly, Shared)
	if err != nil {
		f.Close()
		t.Fatal(err)
	}
	defer m.Close()

	// Read-only typed views are fine, writable ones are not.
	if _, err := View[uint32](m); err != nil {
		t.Errorf("View on read-only mapping: %v", err)
	}
	if _, err := MutView[uint32](m); err != ErrReadonly {
		t.Errorf("expected ErrReadonly, got %v", err)
	}
}

func TestViewAfterClose(t *testing.T) {
	m, err := New(Anonymous{}, 16, ReadWrite, Private)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := View[uint32](m); err != ErrUnmapped {
		t.Errorf("expected ErrUnmapped, got %v", err)
	}
	if _, err := MutView[uint32](m); err != ErrUnmapped {
		t.Errorf("expected ErrUnmapped, got %v", err)
	}
}

// Teardown is terminal: even on a Readonly mapping, use after close
// reports ErrUnmapped, not ErrReadonly.
func TestReadonlyAfterClose(t *testing.T) {
	f := createFile(t, make([]byte, 16), os.O_RDONLY)

	m, err := New(f, 16, Readonly, Shared)
	if err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := m.MutSlice(); err != ErrUnmapped {
		t.Errorf("MutSlice: expected ErrUnmapped, got %v", err)
	}
	if _, err := MutView[uint32](m); err != ErrUnmapped {
		t.Errorf("MutView: expected ErrUnmapped, got %v", err)
	}
}

func TestViewZeroSizedElement(t *testing.T) {
	m, err := New(Anonymous{}, 16, ReadWrite, Private)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if _, err := View[struct{}](m); err != ErrSizeMismatch {
		t.Errorf("expected ErrSizeMismatch for zero-sized element, got %v", err)
	}
}
