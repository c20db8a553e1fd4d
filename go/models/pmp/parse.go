package pmp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseHex parses a hex number with an optional 0x prefix.
func ParseHex(s string, bitSize int) (uint64, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	return strconv.ParseUint(s, 16, bitSize)
}

// ParseAddr parses a physical address in hex.
func ParseAddr(s string) (uint64, error) {
	addr, err := ParseHex(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	return addr, nil
}

// ParsePriv parses one of "M", "S" or "U".
func ParsePriv(s string) (Priv, error) {
	switch s {
	case "M":
		return Machine, nil
	case "S":
		return Supervisor, nil
	case "U":
		return User, nil
	}
	return 0, errors.Errorf("invalid privilege mode %q (expected M, S or U)", s)
}

// ParseOp parses one of "R", "W" or "X".
func ParseOp(s string) (Op, error) {
	switch s {
	case "R":
		return Read, nil
	case "W":
		return Write, nil
	case "X":
		return Execute, nil
	}
	return 0, errors.Errorf("invalid operation %q (expected R, W or X)", s)
}

// ParseQuery parses the address, mode and operation tokens of a query.
func ParseQuery(addr, priv, op string) (Query, error) {
	var q Query
	var err error
	if q.Addr, err = ParseAddr(addr); err != nil {
		return q, err
	}
	if q.Priv, err = ParsePriv(priv); err != nil {
		return q, err
	}
	if q.Op, err = ParseOp(op); err != nil {
		return q, err
	}
	return q, nil
}
