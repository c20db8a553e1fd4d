package pmp

// Query is a single access to check.
type Query struct {
	Addr uint64
	Priv Priv
	Op   Op
}

// Result explains a verdict.
type Result struct {
	Query   Query
	Verdict Verdict
	Rule    Rule
	// nil when no entry covers the address
	Match *Match
}

// Resolve decides whether an access with the given privilege and operation
// is allowed, given the outcome of Table.Match.
//
// Operations outside Read/Write/Execute always fault and return an
// *InvalidOpError. Without a match, machine mode is allowed and every other
// mode faults. A matching entry that is unlocked does not restrict machine
// mode; otherwise its R/W/X bit decides.
func Resolve(m *Match, priv Priv, op Op) (Verdict, error) {
	v, _, err := resolve(m, priv, op)
	return v, err
}

func resolve(m *Match, priv Priv, op Op) (Verdict, Rule, error) {
	if !op.Valid() {
		return Fault, RULE_INVALID_OP, &InvalidOpError{Op: op}
	}
	if m == nil {
		if priv == Machine {
			return Allowed, RULE_NO_MATCH_MACHINE, nil
		}
		return Fault, RULE_NO_MATCH_DENY, nil
	}
	if priv == Machine && !m.Lock {
		return Allowed, RULE_MACHINE_UNLOCKED, nil
	}
	return Verdict(m.Allows(op)), RULE_ENTRY_PERM, nil
}

// Check runs the matcher and resolver for q.
func (t *Table) Check(q Query) (*Result, error) {
	m := t.Match(q.Addr)
	v, rule, err := resolve(m, q.Priv, q.Op)
	return &Result{Query: q, Verdict: v, Rule: rule, Match: m}, err
}

// Access returns nil if q is allowed, or an *AccessError describing the fault.
func (t *Table) Access(q Query) error {
	res, err := t.Check(q)
	if err != nil {
		return err
	}
	if res.Verdict == Allowed {
		return nil
	}
	return newAccessError(res)
}
