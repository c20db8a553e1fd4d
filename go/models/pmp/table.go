package pmp

// Table is a full PMP snapshot. Index order is priority order.
type Table [NumEntries]Entry

// NewTable decodes raw pmpcfg bytes and pmpaddr values into a table.
func NewTable(cfg *[NumEntries]uint8, addr *[NumEntries]uint64) *Table {
	t := &Table{}
	for i := range t {
		t[i] = DecodeEntry(i, cfg[i], addr[i])
	}
	return t
}

// Raw returns the pmpcfg bytes and pmpaddr values of the table.
func (t *Table) Raw() (cfg [NumEntries]uint8, addr [NumEntries]uint64) {
	for i := range t {
		cfg[i] = t[i].Cfg()
		addr[i] = t[i].Addr
	}
	return cfg, addr
}

// Region returns the range covered by entry i, or ok=false if the entry is
// OFF or describes an empty TOR range.
func (t *Table) Region(i int) (r Region, ok bool) {
	var lower uint64
	if i > 0 {
		lower = (t[i-1].Addr & PMP_ADDR_MASK) << PMP_ADDR_SHIFT
	}
	return t[i].region(lower)
}

// Entry returns the entry in slot i, with Index set to i.
func (t *Table) Entry(i int) Entry {
	e := t[i]
	e.Index = i
	return e
}

// Entries returns every slot in priority order, as Entry does.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t))
	for i := range t {
		out[i] = t.Entry(i)
	}
	return out
}

// Match is an entry together with the region it matched through.
type Match struct {
	Entry
	Region Region
}

// Match returns the lowest-index enabled entry covering addr, or nil.
func (t *Table) Match(addr uint64) *Match {
	for i := range t {
		if !t[i].Enabled() {
			continue
		}
		if r, ok := t.Region(i); ok && r.Contains(addr) {
			return &Match{Entry: t.Entry(i), Region: r}
		}
	}
	return nil
}

// Enabled returns every entry that is not OFF, in priority order.
func (t *Table) Enabled() []Entry {
	var out []Entry
	for i := range t {
		if t[i].Enabled() {
			out = append(out, t.Entry(i))
		}
	}
	return out
}
