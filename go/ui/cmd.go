package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

type Context struct {
	io.Writer
	Table *pmp.Table
	Color bool
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

type Command struct {
	Name string
	Desc string
	Args string
	Run  func(c *Context, args ...string) error
}

var Commands = make(map[string]*Command)

var errQuit = errors.New("quit")

func cmd(c *Command) *Command {
	Commands[c.Name] = c
	return c
}

// Exec runs one line of input. It returns false once the session should end.
func Exec(c *Context, line string) bool {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.Printf("parse error: %v\n", err)
		return true
	}
	if len(args) == 0 {
		return true
	}
	name, args := args[0], args[1:]
	cmd, ok := Commands[name]
	if !ok {
		c.Printf("command not found.\n")
		return true
	}
	if err := cmd.Run(c, args...); err == errQuit {
		return false
	} else if err != nil {
		c.Printf("error: %v\n", err)
	}
	return true
}

func usage(name string) error {
	return errors.Errorf("usage: %s %s", name, Commands[name].Args)
}

var CheckCmd = cmd(&Command{
	Name: "check",
	Desc: "Check an access and explain the verdict.",
	Args: "<addr> <M|S|U> <R|W|X>",
	Run: func(c *Context, args ...string) error {
		if len(args) != 3 {
			return usage("check")
		}
		q, err := pmp.ParseQuery(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		res, err := c.Table.Check(q)
		if err != nil {
			return err
		}
		c.Printf("%s\n  %s\n", models.VerdictString(res.Verdict, c.Color), models.Explain(res))
		return nil
	},
})

var MatchCmd = cmd(&Command{
	Name: "match",
	Desc: "Show the entry covering an address.",
	Args: "<addr>",
	Run: func(c *Context, args ...string) error {
		if len(args) != 1 {
			return usage("match")
		}
		addr, err := pmp.ParseAddr(args[0])
		if err != nil {
			return err
		}
		if m := c.Table.Match(addr); m != nil {
			c.Printf("%v [%v]\n", m.Entry, m.Region)
		} else {
			c.Printf("no entry matches %#x\n", addr)
		}
		return nil
	},
})

var EntryCmd = cmd(&Command{
	Name: "entry",
	Desc: "Show one entry by index.",
	Args: "<index>",
	Run: func(c *Context, args ...string) error {
		if len(args) != 1 {
			return usage("entry")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil || i < 0 || i >= pmp.NumEntries {
			return errors.Errorf("invalid entry index %q (expected 0-%d)", args[0], pmp.NumEntries-1)
		}
		c.Printf("%s", models.EntryTable(c.Table, []pmp.Entry{c.Table.Entry(i)}, c.Color))
		return nil
	},
})

var EntriesCmd = cmd(&Command{
	Name: "entries",
	Desc: "List enabled entries, or every entry with \"all\".",
	Args: "[all]",
	Run: func(c *Context, args ...string) error {
		entries := c.Table.Enabled()
		if len(args) == 1 && args[0] == "all" {
			entries = c.Table.Entries()
		} else if len(args) != 0 {
			return usage("entries")
		}
		if len(entries) == 0 {
			c.Printf("no enabled pmp entries\n")
			return nil
		}
		c.Printf("%s", models.EntryTable(c.Table, entries, c.Color))
		return nil
	},
})

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context, args ...string) error {
		var names []string
		pad := 0
		for name, cmd := range Commands {
			names = append(names, name)
			if n := len(name) + len(cmd.Args) + 1; n > pad {
				pad = n
			}
		}
		sort.Slice(names, func(i, j int) bool { return sortorder.NaturalLess(names[i], names[j]) })
		for _, name := range names {
			cmd := Commands[name]
			c.Printf("  %-*s  %s\n", pad, name+" "+cmd.Args, cmd.Desc)
		}
		return nil
	},
})

var QuitCmd = cmd(&Command{
	Name: "quit",
	Desc: "Leave the repl.",
	Run: func(c *Context, args ...string) error {
		return errQuit
	},
})
