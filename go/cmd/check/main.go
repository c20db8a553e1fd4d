package check

import (
	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

// NewCheckCmd returns the command that prints the verdict for one access.
func NewCheckCmd() *cmd.PmpCmd {
	c := cmd.NewPmpCmd("check")
	c.ArgNames = []string{"physical_address", "privilege_mode", "operation"}
	c.Example = "pmp_config.txt 0x80001000 S R"
	c.RunPmp = func(table *pmp.Table, args []string) error {
		q, err := pmp.ParseQuery(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		res, err := table.Check(q)
		if err != nil {
			return err
		}
		c.Config.Debugf("%s\n", models.Explain(res))
		// the verdict line stays plain unless colour was asked for
		c.Config.Println(models.VerdictString(res.Verdict, c.ColorForced))
		return nil
	}
	return c
}

func Main(args []string) int {
	return NewCheckCmd().Run(args)
}

func init() { cmd.Register("check", "check one memory access against a pmp config", Main) }
