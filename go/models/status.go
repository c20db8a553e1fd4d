package models

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mgutz/ansi"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

var chAllowed = ansi.ColorCode("green+b")
var chFault = ansi.ColorCode("red+b")
var chOff = ansi.ColorCode("black+h")
var chLock = ansi.ColorCode("yellow+b")

func colorize(s, color string, enable bool) string {
	if !enable {
		return s
	}
	return color + s + ansi.Reset
}

// VerdictString returns the verdict line, coloured if requested.
func VerdictString(v pmp.Verdict, color bool) string {
	if v == pmp.Allowed {
		return colorize(v.String(), chAllowed, color)
	}
	return colorize(v.String(), chFault, color)
}

// Explain describes how a verdict was reached.
func Explain(res *pmp.Result) string {
	q := res.Query
	desc := fmt.Sprintf("%v-mode %v at %#x: ", q.Priv, q.Op, q.Addr)
	if res.Match != nil {
		desc += fmt.Sprintf("matched pmp%d %v %s [%v], ", res.Match.Index, res.Match.Mode, res.Match.Perms(), res.Match.Region)
		if res.Match.Lock {
			desc += "locked, "
		}
	}
	return desc + res.Rule.String()
}

type cell struct {
	text  string
	color string
}

// EntryTable renders entries as aligned columns.
func EntryTable(t *pmp.Table, entries []pmp.Entry, color bool) string {
	var rows [][]cell
	rows = append(rows, []cell{{text: "idx"}, {text: "mode"}, {text: "perm"}, {text: "lock"}, {text: "pmpaddr"}, {text: "region"}})
	for _, e := range entries {
		mode := cell{text: e.Mode.String()}
		if !e.Enabled() {
			mode.color = chOff
		}
		lock := cell{}
		if e.Lock {
			lock = cell{"L", chLock}
		}
		region := "-"
		if r, ok := t.Region(e.Index); ok {
			region = r.String()
		} else if e.Enabled() {
			region = "(empty)"
		}
		rows = append(rows, []cell{
			{text: fmt.Sprintf("%d", e.Index)}, mode, {text: e.Perms()}, lock,
			{text: fmt.Sprintf("%#x", e.Addr)}, {text: region},
		})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c.text); w > widths[i] {
				widths[i] = w
			}
		}
	}
	var out []string
	for _, row := range rows {
		cols := make([]string, len(row))
		for i, c := range row {
			text := c.text
			if i < len(row)-1 {
				text = runewidth.FillRight(text, widths[i])
			}
			if c.color != "" {
				text = colorize(text, c.color, color)
			}
			cols[i] = text
		}
		out = append(out, strings.TrimRight(strings.Join(cols, "  "), " "))
	}
	return strings.Join(out, "\n") + "\n"
}
