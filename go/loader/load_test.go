package loader

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

// 128 lines, everything OFF except the entries given as index -> cfg, addr
func textSnapshot(ents map[int][2]uint64) string {
	var lines []string
	for i := 0; i < pmp.NumEntries; i++ {
		lines = append(lines, fmt.Sprintf("0x%02x", ents[i][0]))
	}
	for i := 0; i < pmp.NumEntries; i++ {
		lines = append(lines, fmt.Sprintf("0x%x", ents[i][1]))
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestReadText(t *testing.T) {
	src := textSnapshot(map[int][2]uint64{
		0: {0x19, 0x401},
		5: {0x8c, 0x20000000},
	})
	tab, err := ReadText(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if e := tab[0]; e.Mode != pmp.NAPOT || !e.R || e.W || e.X || e.Lock || e.Addr != 0x401 {
		t.Errorf("entry 0 = %v", e)
	}
	if e := tab[5]; e.Mode != pmp.TOR || !e.Lock || !e.X || e.R || e.Addr != 0x20000000 {
		t.Errorf("entry 5 = %v", e)
	}
	if len(tab.Enabled()) != 2 {
		t.Errorf("expected 2 enabled entries, got %d", len(tab.Enabled()))
	}
}

func TestReadTextFormats(t *testing.T) {
	// no prefix, upper case, CRLF and padding are all accepted
	var lines []string
	for i := 0; i < TextLines; i++ {
		lines = append(lines, "  00 ")
	}
	lines[0] = "1F"
	lines[pmp.NumEntries] = "0XABC"
	tab, err := ReadText(strings.NewReader(strings.Join(lines, "\r\n")))
	if err != nil {
		t.Fatal(err)
	}
	if tab[0].Cfg() != 0x1f || tab[0].Addr != 0xabc {
		t.Errorf("entry 0 = %v", tab[0])
	}
}

func TestReadTextLineCount(t *testing.T) {
	full := textSnapshot(nil)
	lines := strings.Split(strings.TrimSuffix(full, "\n"), "\n")
	for _, n := range []int{0, 1, 64, 127, 129, 256} {
		var src []string
		for i := 0; i < n; i++ {
			src = append(src, lines[i%len(lines)])
		}
		_, err := ReadText(strings.NewReader(strings.Join(src, "\n")))
		lerr, ok := errors.Cause(err).(*LineCountError)
		if !ok {
			t.Errorf("%d lines: expected *LineCountError, got %v", n, err)
		} else if lerr.Lines != n {
			t.Errorf("%d lines: error reports %d", n, lerr.Lines)
		}
	}
}

func TestReadTextParseError(t *testing.T) {
	table := []struct {
		line  int
		value string
	}{
		{0, "0x10000000000000000"},
		{3, "zz"},
		{63, ""},
		{64, "0x10000000000000000"},
		{127, "-1"},
	}
	for _, v := range table {
		lines := strings.Split(strings.TrimSuffix(textSnapshot(nil), "\n"), "\n")
		lines[v.line] = v.value
		_, err := ReadText(strings.NewReader(strings.Join(lines, "\n")))
		perr, ok := errors.Cause(err).(*ParseError)
		if !ok {
			t.Errorf("line %d %q: expected *ParseError, got %v", v.line, v.value, err)
		} else if perr.Line != v.line+1 {
			t.Errorf("line %d %q: error reports line %d", v.line, v.value, perr.Line)
		}
	}
}

func TestReadTextWideCfg(t *testing.T) {
	// bits above the low byte are ignored
	lines := strings.Split(strings.TrimSuffix(textSnapshot(nil), "\n"), "\n")
	lines[0], lines[pmp.NumEntries] = "0x119", "0x401"
	tab, err := ReadText(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	if e := tab[0]; e.Cfg() != 0x19 || e.Mode != pmp.NAPOT || !e.R || e.W {
		t.Errorf("entry 0 = %v", e)
	}
}

func TestTextRoundTrip(t *testing.T) {
	src := textSnapshot(map[int][2]uint64{
		1:  {0x0f, 0x1234},
		63: {0x9b, 0x3fffffffffffffff},
	})
	tab, err := ReadText(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, tab); err != nil {
		t.Fatal(err)
	}
	if buf.String() != src {
		t.Error("WriteText output differs from input")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	tab, err := ReadText(strings.NewReader(textSnapshot(map[int][2]uint64{
		0:  {0x19, 0x401},
		10: {0x8f, 0xffffffff},
		63: {0x0b, 0x3fffffffffffffff},
	})))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteBinary(&buf, tab); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte(SNAPSHOT_MAGIC)) {
		t.Fatal("binary snapshot missing magic")
	}
	got, err := Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if *got != *tab {
		t.Error("binary round trip changed the table")
	}
}

func TestReadBinaryBadHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, &pmp.Table{}); err != nil {
		t.Fatal(err)
	}
	p := buf.Bytes()
	// version field follows the 4 byte magic, big endian
	bad := append([]byte{}, p...)
	bad[7] = 9
	if _, err := ReadBinary(bytes.NewReader(bad)); err == nil {
		t.Error("expected unsupported version error")
	}
	if _, err := ReadBinary(bytes.NewReader(p[:6])); err == nil {
		t.Error("expected error on truncated header")
	}
	if _, err := ReadBinary(bytes.NewReader([]byte("XXXX\x00\x00\x00\x01\x00\x00\x00\x40"))); err == nil {
		t.Error("expected bad magic error")
	}
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "pmpcheck")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "pmp.txt")
	if err := ioutil.WriteFile(path, []byte(textSnapshot(map[int][2]uint64{2: {0x12, 0x40}})), 0644); err != nil {
		t.Fatal(err)
	}
	tab, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if tab[2].Mode != pmp.NA4 || !tab[2].W {
		t.Errorf("entry 2 = %v", tab[2])
	}
	if _, err := LoadFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(bytes.NewReader(nil)); err == nil {
		t.Error("expected error for empty snapshot")
	}
}
