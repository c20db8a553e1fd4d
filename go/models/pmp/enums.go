package pmp

import "fmt"

// number of PMP entries in a snapshot
const NumEntries = 64

// pmpcfg byte layout
const (
	PMP_CFG_R = 1 << 0
	PMP_CFG_W = 1 << 1
	PMP_CFG_X = 1 << 2
	PMP_CFG_L = 1 << 7

	PMP_CFG_A_SHIFT = 3
	PMP_CFG_A_MASK  = 3 << PMP_CFG_A_SHIFT
)

// pmpaddr registers hold bits 63:2 of the address
const (
	PMP_ADDR_SHIFT = 2
	PMP_ADDR_BITS  = 64 - PMP_ADDR_SHIFT
	PMP_ADDR_MASK  = ^uint64(0) >> PMP_ADDR_SHIFT
)

// AddrMode is the decoded A field of a pmpcfg byte.
type AddrMode int

const (
	OFF AddrMode = iota
	TOR
	NA4
	NAPOT
)

func (a AddrMode) String() string {
	switch a {
	case OFF:
		return "OFF"
	case TOR:
		return "TOR"
	case NA4:
		return "NA4"
	case NAPOT:
		return "NAPOT"
	}
	return fmt.Sprintf("AddrMode(%d)", int(a))
}

// Priv is the privilege mode of the hart issuing an access.
type Priv int

const (
	User Priv = iota
	Supervisor
	Machine
)

func (p Priv) String() string {
	switch p {
	case Machine:
		return "M"
	case Supervisor:
		return "S"
	case User:
		return "U"
	}
	return fmt.Sprintf("Priv(%d)", int(p))
}

// Op is the kind of memory access being checked.
type Op int

const (
	Read Op = iota
	Write
	Execute
)

func (o Op) Valid() bool {
	return o == Read || o == Write || o == Execute
}

func (o Op) String() string {
	switch o {
	case Read:
		return "R"
	case Write:
		return "W"
	case Execute:
		return "X"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Verdict is the outcome of a PMP check.
type Verdict bool

const (
	Fault   Verdict = false
	Allowed Verdict = true
)

// String returns the literal line printed by the checker.
func (v Verdict) String() string {
	if v == Allowed {
		return "No Access Fault"
	}
	return "Access Fault"
}

// Rule names the resolver branch that produced a verdict.
type Rule int

const (
	RULE_INVALID_OP Rule = iota
	RULE_NO_MATCH_MACHINE
	RULE_NO_MATCH_DENY
	RULE_MACHINE_UNLOCKED
	RULE_ENTRY_PERM
)

func (r Rule) String() string {
	switch r {
	case RULE_INVALID_OP:
		return "invalid operation"
	case RULE_NO_MATCH_MACHINE:
		return "no matching entry, machine mode is not restricted"
	case RULE_NO_MATCH_DENY:
		return "no matching entry, access denied below machine mode"
	case RULE_MACHINE_UNLOCKED:
		return "unlocked entry does not restrict machine mode"
	case RULE_ENTRY_PERM:
		return "entry permissions apply"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}
