//go:build linux

package mapped

import (
	"math/bits"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// HugePageLocation is where the kernel exposes the available
// huge-page sizes.
const HugePageLocation = "/sys/kernel/mm/hugepages"

// hugeShift is the bit position the huge-page size selector occupies
// in mmap and memfd_create flags (MAP_HUGE_SHIFT / MFD_HUGE_SHIFT).
const hugeShift = 26

// HugeFlag selects a huge-page size for NewHuge and NewHugeMemFile.
// The encoding is the kernel's MAP_HUGE_* scheme: log2 of the page
// size in bytes, shifted into the high flag bits.
type HugeFlag int

// HugeDefault selects the kernel's default huge-page size.
const HugeDefault HugeFlag = 0

// Predefined flags for the common x86-64 huge-page sizes.
var (
	Huge2MB = CalculateHuge(2048)
	Huge1GB = CalculateHuge(1 << 20)
)

// CalculateHuge computes the flag for a huge-page size given in
// kilobytes. Sizes that are zero, negative or not a power of two fall
// back to HugeDefault.
func CalculateHuge(kilobytes int) HugeFlag {
	if kilobytes <= 0 || kilobytes&(kilobytes-1) != 0 {
		return HugeDefault
	}
	log2 := bits.Len(uint(kilobytes)) - 1
	return HugeFlag((log2 + 10) << hugeShift) // +10: kB to bytes
}

// Kilobytes returns the page size the flag selects, in kB, or 0 for
// HugeDefault.
func (h HugeFlag) Kilobytes() int {
	if h == HugeDefault {
		return 0
	}
	return 1 << (uint(h)>>hugeShift - 10)
}

var hugePageSizes = sync.OnceValues(func() ([]int, error) {
	return scanHugePages()
})

// HugePageSizes returns the huge-page sizes the system supports, in
// kB, sorted ascending. The scan of HugePageLocation runs once per
// process.
func HugePageSizes() ([]int, error) {
	return hugePageSizes()
}

// SmallestHugePage returns the flag for the smallest huge-page size
// the system supports, or HugeDefault if the sizes cannot be
// enumerated.
func SmallestHugePage() HugeFlag {
	sizes, err := HugePageSizes()
	if err != nil || len(sizes) == 0 {
		return HugeDefault
	}
	return CalculateHuge(sizes[0])
}

// LargestHugePage returns the flag for the largest huge-page size the
// system supports, or HugeDefault if the sizes cannot be enumerated.
func LargestHugePage() HugeFlag {
	sizes, err := HugePageSizes()
	if err != nil || len(sizes) == 0 {
		return HugeDefault
	}
	return CalculateHuge(sizes[len(sizes)-1])
}

// scanHugePages parses the hugepages-<size>kB entries the kernel
// publishes. Entries that do not parse are skipped.
func scanHugePages() ([]int, error) {
	entries, err := os.ReadDir(HugePageLocation)
	if err != nil {
		return nil, err
	}

	var sizes []int
	for _, e := range entries {
		name, ok := strings.CutPrefix(e.Name(), "hugepages-")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, "kB")
		if !ok {
			continue
		}
		kb, err := strconv.Atoi(name)
		if err != nil || kb <= 0 {
			continue
		}
		sizes = append(sizes, kb)
	}
	slices.Sort(sizes)
	return sizes, nil
}
