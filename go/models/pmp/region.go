package pmp

import "fmt"

// Region is an inclusive byte range. Last may be the top of the 64-bit
// address space.
type Region struct {
	Start uint64
	Last  uint64
}

func (r Region) Contains(addr uint64) bool {
	return addr >= r.Start && addr <= r.Last
}

// Size returns the number of bytes covered, or 0 for the full address space.
func (r Region) Size() uint64 {
	return r.Last - r.Start + 1
}

func (r Region) String() string {
	return fmt.Sprintf("0x%x-0x%x", r.Start, r.Last)
}
