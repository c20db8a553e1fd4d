package pmp

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestResolveLockBit(t *testing.T) {
	locked := &Match{Entry: Entry{Lock: true, Mode: NA4, R: false, W: true, X: true}}
	if v, _ := Resolve(locked, Machine, Read); v != Fault {
		t.Error("locked entry without R should deny M-mode read")
	}
	if v, _ := Resolve(locked, Machine, Write); v != Allowed {
		t.Error("locked entry with W should allow M-mode write")
	}
	unlocked := &Match{Entry: Entry{Lock: false, Mode: NA4}}
	for _, op := range []Op{Read, Write, Execute} {
		if v, _ := Resolve(unlocked, Machine, op); v != Allowed {
			t.Errorf("unlocked entry should not restrict M-mode %v", op)
		}
		if v, _ := Resolve(unlocked, Supervisor, op); v != Fault {
			t.Errorf("unlocked entry without perms should deny S-mode %v", op)
		}
	}
}

func TestResolvePerms(t *testing.T) {
	table := []struct {
		perms string
		op    Op
		want  Verdict
	}{
		{"r", Read, Allowed},
		{"r", Write, Fault},
		{"r", Execute, Fault},
		{"w", Write, Allowed},
		{"w", Read, Fault},
		{"x", Execute, Allowed},
		{"rwx", Execute, Allowed},
		{"", Read, Fault},
	}
	for _, v := range table {
		e := DecodeEntry(0, uint8(cfgByte(false, NA4, v.perms)), 0)
		for _, priv := range []Priv{Supervisor, User} {
			got, err := Resolve(&Match{Entry: e}, priv, v.op)
			if err != nil {
				t.Fatal(err)
			}
			if got != v.want {
				t.Errorf("%s %v-mode %v = %v, want %v", v.perms, priv, v.op, got, v.want)
			}
		}
	}
}

func TestResolveInvalidOp(t *testing.T) {
	m := &Match{Entry: Entry{Mode: NA4, R: true, W: true, X: true}}
	for _, match := range []*Match{nil, m} {
		for _, priv := range []Priv{Machine, Supervisor, User} {
			v, err := Resolve(match, priv, Op(7))
			if v != Fault {
				t.Errorf("invalid op allowed in %v-mode", priv)
			}
			if _, ok := errors.Cause(err).(*InvalidOpError); !ok {
				t.Errorf("expected *InvalidOpError, got %v", err)
			}
		}
	}
}

func TestResolveUnknownPrivFailsClosed(t *testing.T) {
	if v, _ := Resolve(nil, Priv(9), Read); v != Fault {
		t.Error("unknown privilege should fault without a match")
	}
}

func TestCheckScenarios(t *testing.T) {
	// entry 0 = NAPOT over [0x1000, 0x1010), R only
	napotTab := mktable([3]uint64{0, cfgByte(false, NAPOT, "r"), 0x401})
	offTab := mktable()
	table := []struct {
		tab  *Table
		addr string
		priv string
		op   string
		want string
	}{
		{napotTab, "0x1004", "S", "R", "No Access Fault"},
		{napotTab, "0x1004", "S", "W", "Access Fault"},
		{napotTab, "0x1010", "S", "R", "Access Fault"},
		{napotTab, "0x1004", "M", "W", "No Access Fault"},
		{offTab, "0xdeadbeef", "M", "X", "No Access Fault"},
		{offTab, "0", "M", "W", "No Access Fault"},
		{offTab, "0xdeadbeef", "U", "R", "Access Fault"},
		{offTab, "0xdeadbeef", "S", "X", "Access Fault"},
	}
	for _, v := range table {
		q, err := ParseQuery(v.addr, v.priv, v.op)
		if err != nil {
			t.Fatal(err)
		}
		res, err := v.tab.Check(q)
		if err != nil {
			t.Fatal(err)
		}
		if got := res.Verdict.String(); got != v.want {
			t.Errorf("%s %s %s = %q, want %q", v.addr, v.priv, v.op, got, v.want)
		}
		// same input, same answer
		again, _ := v.tab.Check(q)
		if again.Verdict != res.Verdict || again.Rule != res.Rule {
			t.Errorf("%s %s %s: repeated check disagreed", v.addr, v.priv, v.op)
		}
	}
}

func TestCheckRules(t *testing.T) {
	tab := mktable([3]uint64{0, cfgByte(false, NAPOT, "r"), 0x401})
	table := []struct {
		q    Query
		rule Rule
		idx  int
	}{
		{Query{0x1004, Machine, Write}, RULE_MACHINE_UNLOCKED, 0},
		{Query{0x1004, User, Write}, RULE_ENTRY_PERM, 0},
		{Query{0x2000, Machine, Read}, RULE_NO_MATCH_MACHINE, -1},
		{Query{0x2000, User, Read}, RULE_NO_MATCH_DENY, -1},
	}
	for _, v := range table {
		res, err := tab.Check(v.q)
		if err != nil {
			t.Fatal(err)
		}
		idx := -1
		if res.Match != nil {
			idx = res.Match.Index
		}
		if res.Rule != v.rule || idx != v.idx {
			t.Errorf("Check(%+v) = rule %v entry %d, want %v entry %d", v.q, res.Rule, idx, v.rule, v.idx)
		}
	}
}

func TestAccessError(t *testing.T) {
	tab := mktable([3]uint64{4, cfgByte(true, NA4, "r"), 0x400})
	if err := tab.Access(Query{0x1000, Machine, Read}); err != nil {
		t.Errorf("locked readable entry: %v", err)
	}
	err := tab.Access(Query{0x1000, Machine, Write})
	aerr, ok := err.(*AccessError)
	if !ok {
		t.Fatalf("expected *AccessError, got %v", err)
	}
	if aerr.Entry != 4 || aerr.Enum != PMP_WRITE_PROT || !strings.Contains(aerr.Error(), "pmp4") {
		t.Errorf("unexpected fault %+v: %s", aerr, aerr)
	}
	err = tab.Access(Query{0x2000, User, Execute})
	if aerr, ok := err.(*AccessError); !ok || aerr.Enum != PMP_NO_MATCH || aerr.Entry != -1 {
		t.Errorf("expected no-match fault, got %v", err)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("0X80001000", "U", "X")
	if err != nil {
		t.Fatal(err)
	}
	if q.Addr != 0x80001000 || q.Priv != User || q.Op != Execute {
		t.Errorf("ParseQuery = %+v", q)
	}
	if q, err := ParseQuery("1f", "S", "R"); err != nil || q.Addr != 0x1f {
		t.Errorf("bare hex address: %+v %v", q, err)
	}
	bad := [][3]string{
		{"zz", "M", "R"},
		{"0x", "M", "R"},
		{"0x10000000000000000", "M", "R"},
		{"0x10", "H", "R"},
		{"0x10", "m", "R"},
		{"0x10", "M", "RW"},
		{"0x10", "M", ""},
	}
	for _, b := range bad {
		if _, err := ParseQuery(b[0], b[1], b[2]); err == nil {
			t.Errorf("ParseQuery(%q) should fail", b)
		}
	}
}
