package pmp

import (
	"fmt"
	"math/bits"
)

// Entry is one decoded pmpcfg/pmpaddr pair.
type Entry struct {
	Index int
	Lock  bool
	Mode  AddrMode
	R     bool
	W     bool
	X     bool
	// raw pmpaddr value, in 4-byte units
	Addr uint64
}

// DecodeEntry splits a pmpcfg byte into its fields. Only the low 62 bits of
// addr are kept, the width of a pmpaddr register.
func DecodeEntry(index int, cfg uint8, addr uint64) Entry {
	return Entry{
		Index: index,
		Lock:  cfg&PMP_CFG_L != 0,
		Mode:  AddrMode((cfg & PMP_CFG_A_MASK) >> PMP_CFG_A_SHIFT),
		R:     cfg&PMP_CFG_R != 0,
		W:     cfg&PMP_CFG_W != 0,
		X:     cfg&PMP_CFG_X != 0,
		Addr:  addr & PMP_ADDR_MASK,
	}
}

// Cfg re-encodes the entry as a pmpcfg byte.
func (e Entry) Cfg() uint8 {
	cfg := uint8(e.Mode&3) << PMP_CFG_A_SHIFT
	if e.Lock {
		cfg |= PMP_CFG_L
	}
	if e.R {
		cfg |= PMP_CFG_R
	}
	if e.W {
		cfg |= PMP_CFG_W
	}
	if e.X {
		cfg |= PMP_CFG_X
	}
	return cfg
}

// Enabled reports whether the entry takes part in matching.
func (e Entry) Enabled() bool {
	return e.Mode != OFF
}

// Allows reports whether the entry's permission triple grants op.
func (e Entry) Allows(op Op) bool {
	switch op {
	case Read:
		return e.R
	case Write:
		return e.W
	case Execute:
		return e.X
	}
	return false
}

func (e Entry) Perms() string {
	prot := []byte("---")
	if e.R {
		prot[0] = 'r'
	}
	if e.W {
		prot[1] = 'w'
	}
	if e.X {
		prot[2] = 'x'
	}
	return string(prot)
}

func (e Entry) String() string {
	lock := "-"
	if e.Lock {
		lock = "L"
	}
	return fmt.Sprintf("pmp%d: %-5s %s %s addr=%#x", e.Index, e.Mode, e.Perms(), lock, e.Addr)
}

// trailingOnes counts consecutive set bits from bit 0. The result is bounded
// by the integer width, so an all-ones value yields 64.
func trailingOnes(a uint64) int {
	return bits.TrailingZeros64(^a)
}

// napot decodes a NAPOT pmpaddr value into its region.
func napot(a uint64) Region {
	shift := uint(trailingOnes(a) + 3)
	if shift >= 64 {
		return Region{Start: 0, Last: ^uint64(0)}
	}
	size := uint64(1) << shift
	base := (a << PMP_ADDR_SHIFT) &^ (size - 1)
	return Region{Start: base, Last: base + (size - 1)}
}

// region computes the address range covered by e. lower is the TOR lower
// bound in bytes: the pmpaddr of the slot just below e, whatever that entry's
// own mode is, or 0 for the first slot. ok is false when e cannot match
// anything.
func (e Entry) region(lower uint64) (r Region, ok bool) {
	a := e.Addr << PMP_ADDR_SHIFT
	switch e.Mode {
	case TOR:
		if lower >= a {
			return Region{}, false
		}
		return Region{Start: lower, Last: a - 1}, true
	case NA4:
		return Region{Start: a, Last: a + 3}, true
	case NAPOT:
		return napot(e.Addr), true
	}
	return Region{}, false
}
