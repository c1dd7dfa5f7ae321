//go:build linux

package mapped

import (
	"os"
	"slices"
	"testing"
)

func TestCalculateHuge(t *testing.T) {
	// The kernel encodes log2 of the page size in bytes at bit 26:
	// MAP_HUGE_2MB is 21<<26, MAP_HUGE_1GB is 30<<26.
	if Huge2MB != HugeFlag(21<<hugeShift) {
		t.Errorf("Huge2MB: got %#x, want %#x", int(Huge2MB), 21<<hugeShift)
	}
	if Huge1GB != HugeFlag(30<<hugeShift) {
		t.Errorf("Huge1GB: got %#x, want %#x", int(Huge1GB), 30<<hugeShift)
	}

	if got := CalculateHuge(0); got != HugeDefault {
		t.Errorf("CalculateHuge(0): got %#x, want HugeDefault", int(got))
	}
	if got := CalculateHuge(-4); got != HugeDefault {
		t.Errorf("CalculateHuge(-4): got %#x, want HugeDefault", int(got))
	}
	// Non-power-of-two sizes cannot name a real page size.
	if got := CalculateHuge(3000); got != HugeDefault {
		t.Errorf("CalculateHuge(3000): got %#x, want HugeDefault", int(got))
	}
}

func TestHugeFlagKilobytes(t *testing.T) {
	if got := Huge2MB.Kilobytes(); got != 2048 {
		t.Errorf("Huge2MB.Kilobytes: got %d, want 2048", got)
	}
	if got := Huge1GB.Kilobytes(); got != 1<<20 {
		t.Errorf("Huge1GB.Kilobytes: got %d, want %d", got, 1<<20)
	}
	if got := HugeDefault.Kilobytes(); got != 0 {
		t.Errorf("HugeDefault.Kilobytes: got %d, want 0", got)
	}
}

func TestHugePageSizes(t *testing.T) {
	if _, err := os.Stat(HugePageLocation); err != nil {
		t.Skipf("no hugepage sysfs: %v", err)
	}

	sizes, err := HugePageSizes()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.IsSorted(sizes) {
		t.Errorf("sizes not sorted: %v", sizes)
	}
	for _, kb := range sizes {
		if CalculateHuge(kb) == HugeDefault {
			t.Errorf("system size %dkB does not produce a flag", kb)
		}
	}

	if len(sizes) > 0 {
		if got := SmallestHugePage(); got != CalculateHuge(sizes[0]) {
			t.Errorf("SmallestHugePage: got %#x", int(got))
		}
		if got := LargestHugePage(); got != CalculateHuge(sizes[len(sizes)-1]) {
			t.Errorf("LargestHugePage: got %#x", int(got))
		}
	}
}
