package convert

import (
	"os"

	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd"
	"github.com/Hafsa-shoaib989/pmpcheck/go/loader"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

// NewConvertCmd returns the command that rewrites a config as text or as a
// binary snapshot. Either format is accepted as input.
func NewConvertCmd() *cmd.PmpCmd {
	c := cmd.NewPmpCmd("convert")
	c.ArgNames = []string{"output"}
	c.Example = "-binary pmp_config.txt pmp_config.pmps"
	var binary *bool
	c.SetupFlags = func() error {
		binary = c.Flags.Bool("binary", false, "write a compressed binary snapshot instead of text")
		return nil
	}
	c.RunPmp = func(table *pmp.Table, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to create output")
		}
		if *binary {
			err = loader.WriteBinary(f, table)
		} else {
			err = loader.WriteText(f, table)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "failed to write %s", args[0])
		}
		c.Config.Debugf("wrote %d enabled entries to %s\n", len(table.Enabled()), args[0])
		return nil
	}
	return c
}

func Main(args []string) int {
	return NewConvertCmd().Run(args)
}

func init() { cmd.Register("convert", "convert between text and binary pmp configs", Main) }
