package pmp

import "fmt"

// fault reasons carried by AccessError
const (
	PMP_NO_MATCH = iota + 1
	PMP_READ_PROT
	PMP_WRITE_PROT
	PMP_EXEC_PROT
)

type AccessError struct {
	Addr uint64
	Priv Priv
	Op   Op
	// index of the entry that denied the access, -1 if none matched
	Entry int
	Enum  int
}

func newAccessError(res *Result) *AccessError {
	e := &AccessError{Addr: res.Query.Addr, Priv: res.Query.Priv, Op: res.Query.Op, Entry: -1, Enum: PMP_NO_MATCH}
	if res.Match != nil {
		e.Entry = res.Match.Index
		switch res.Query.Op {
		case Read:
			e.Enum = PMP_READ_PROT
		case Write:
			e.Enum = PMP_WRITE_PROT
		case Execute:
			e.Enum = PMP_EXEC_PROT
		}
	}
	return e
}

func (e *AccessError) Error() string {
	reason := "access fault"
	switch e.Enum {
	case PMP_NO_MATCH:
		reason = "no matching pmp entry"
	case PMP_READ_PROT:
		reason = fmt.Sprintf("read denied by pmp%d", e.Entry)
	case PMP_WRITE_PROT:
		reason = fmt.Sprintf("write denied by pmp%d", e.Entry)
	case PMP_EXEC_PROT:
		reason = fmt.Sprintf("exec denied by pmp%d", e.Entry)
	}
	return fmt.Sprintf("%s at %#x (%s-mode)", reason, e.Addr, e.Priv)
}

// InvalidOpError is returned when an operation outside Read/Write/Execute
// reaches the resolver. The accompanying verdict is always Fault.
type InvalidOpError struct {
	Op Op
}

func (e *InvalidOpError) Error() string {
	return fmt.Sprintf("invalid pmp operation %v", e.Op)
}
