package repl

import (
	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
	"github.com/Hafsa-shoaib989/pmpcheck/go/ui"
)

func NewReplCmd() *cmd.PmpCmd {
	c := cmd.NewPmpCmd("repl")
	c.Example = "pmp_config.txt"
	c.RunPmp = func(table *pmp.Table, args []string) error {
		r, err := ui.NewRepl(table, c.Config)
		if err != nil {
			return err
		}
		c.Config.Printf("loaded %d enabled pmp entries, type help for commands\n", len(table.Enabled()))
		return r.Run()
	}
	return c
}

func Main(args []string) int {
	return NewReplCmd().Run(args)
}

func init() { cmd.Register("repl", "interactively query a pmp config", Main) }
