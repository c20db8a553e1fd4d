package dump

import (
	"fmt"

	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

func NewDumpCmd() *cmd.PmpCmd {
	c := cmd.NewPmpCmd("dump")
	c.Example = "-all pmp_config.txt"
	var all *bool
	c.SetupFlags = func() error {
		all = c.Flags.Bool("all", false, "include OFF entries")
		return nil
	}
	c.RunPmp = func(table *pmp.Table, args []string) error {
		entries := table.Enabled()
		if *all {
			entries = table.Entries()
		}
		if len(entries) == 0 {
			c.Config.Println("no enabled pmp entries")
			return nil
		}
		fmt.Fprint(c.Config.Stdout, models.EntryTable(table, entries, c.Config.Color))
		return nil
	}
	return c
}

func Main(args []string) int {
	return NewDumpCmd().Run(args)
}

func init() { cmd.Register("dump", "print the decoded pmp entries", Main) }
