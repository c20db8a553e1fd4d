package loader

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

// a text snapshot is one hex value per line: every pmpcfg byte, then every
// pmpaddr register
const TextLines = 2 * pmp.NumEntries

// LineCountError is returned when a text snapshot does not hold exactly
// TextLines lines.
type LineCountError struct {
	Lines int
}

func (e *LineCountError) Error() string {
	return fmt.Sprintf("invalid pmp configuration: expected %d lines, got %d", TextLines, e.Lines)
}

// ParseError reports an unparsable value on a 1-based line.
type ParseError struct {
	Line  int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid value %q: %v", e.Line, e.Value, e.Err)
}

// ReadText decodes the 128-line hex snapshot format.
func ReadText(r io.Reader) (*pmp.Table, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read pmp snapshot")
	}
	if len(lines) != TextLines {
		return nil, errors.WithStack(&LineCountError{Lines: len(lines)})
	}
	var cfg [pmp.NumEntries]uint8
	var addr [pmp.NumEntries]uint64
	for i, line := range lines {
		if i < pmp.NumEntries {
			v, err := pmp.ParseHex(line, 64)
			if err != nil {
				return nil, errors.WithStack(&ParseError{Line: i + 1, Value: line, Err: err})
			}
			// only the low byte holds pmpcfg fields
			cfg[i] = uint8(v)
		} else {
			v, err := pmp.ParseHex(line, 64)
			if err != nil {
				return nil, errors.WithStack(&ParseError{Line: i + 1, Value: line, Err: err})
			}
			addr[i-pmp.NumEntries] = v
		}
	}
	return pmp.NewTable(&cfg, &addr), nil
}

// WriteText encodes t in the text snapshot format.
func WriteText(w io.Writer, t *pmp.Table) error {
	cfg, addr := t.Raw()
	bw := bufio.NewWriter(w)
	for _, c := range cfg {
		fmt.Fprintf(bw, "0x%02x\n", c)
	}
	for _, a := range addr {
		fmt.Fprintf(bw, "0x%x\n", a)
	}
	return errors.Wrap(bw.Flush(), "failed to write pmp snapshot")
}
