package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"

	"github.com/Hafsa-shoaib989/pmpcheck/go/loader"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

type PmpCmd struct {
	Config *models.Config

	SetupFlags func() error
	// called with the loaded snapshot and the positional args after it
	RunPmp   func(table *pmp.Table, args []string) error
	Teardown func()

	// positional args after the snapshot path, for usage output
	ArgNames []string
	// don't load a snapshot, RunPmp gets a nil table and every arg
	NoTable bool
	Example string

	Table *pmp.Table
	Flags *flag.FlagSet
	// set when -color was given, as opposed to colour from terminal detection
	ColorForced bool
}

func NewPmpCmd(name string) *PmpCmd {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &PmpCmd{Flags: fs}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *PmpCmd) PrintError(err error) {
	out := c.Config.Output
	fmt.Fprintf(out, "Error: %s\n", err)
	if !c.Config.Verbose {
		return
	}
	// print a stacktrace if available
	if err, ok := err.(stackTracer); ok {
		fmt.Fprintf(out, "%s\n", strings.Repeat("-", 40))
		// parse full path and method name for each stack frame
		var frames [][]string
		for _, f := range err.StackTrace() {
			fullpath := ""
			fileline := fmt.Sprintf("%s:%d", f, f)
			method := fmt.Sprintf("%n", f)

			frame := fmt.Sprintf("%+s", f)
			tmp := strings.SplitN(frame, "\n", 3)
			if len(tmp) == 2 {
				pathsplit := strings.Split(tmp[0], "/")
				method = pathsplit[len(pathsplit)-1]
				fullpath = strings.TrimSpace(tmp[1])
			}
			frames = append(frames, []string{fullpath, fileline, method})
			if method == "main.main" {
				break
			}
		}
		// calculate column widths
		widths := make([]int, 3)
		for _, f := range frames {
			for i, s := range f {
				if len(s) > widths[i] {
					widths[i] = len(s)
				}
			}
		}
		// print pretty stacktrace
		for _, f := range frames {
			method := f[2]
			for i := 0; i < 2; i++ {
				if widths[i] > 0 {
					pad := strings.Repeat(" ", widths[i]-len(f[i]))
					fmt.Fprintf(out, "%s%s | ", f[i], pad)
				}
			}
			fmt.Fprintf(out, "%s()\n", method)
		}
	}
}

func (c *PmpCmd) usage() {
	out := c.Config.Output
	usage := "Usage: %s [options]"
	if !c.NoTable {
		usage += " <pmp_config>"
	}
	for _, name := range c.ArgNames {
		usage += " <" + name + ">"
	}
	fmt.Fprintf(out, usage+"\n\nOptions:\n", c.Flags.Name())
	var flags []*flag.Flag
	c.Flags.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })
	models.PrintFlags(out, flags)
	if c.Example != "" {
		fmt.Fprintf(out, "\nExample:\n  %s %s\n", c.Flags.Name(), c.Example)
	}
}

// Run parses argv (argv[0] is the command name), loads the snapshot and
// calls RunPmp. It returns the process exit code.
func (c *PmpCmd) Run(argv []string) int {
	if c.Config == nil {
		c.Config = models.NewConfig()
	}
	config := c.Config.Init()

	fs := c.Flags
	fs.SetOutput(config.Output)
	verbose := fs.Bool("v", false, "explain verdicts and print error stack traces")
	color := fs.Bool("color", false, "force colored output")
	nocolor := fs.Bool("nocolor", false, "disable colored output")
	outfile := fs.String("o", "", "redirect diagnostic output to file (default stderr)")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to <file>")
	fs.Usage = c.usage
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			panic(err)
		}
	}
	if err := fs.Parse(argv[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	config.Verbose = config.Verbose || *verbose
	if *color && !config.Color {
		config.Color = true
		if config.Stdout == os.Stdout {
			config.Stdout = colorable.NewColorableStdout()
		}
	}
	if *nocolor {
		config.Color = false
	}
	c.ColorForced = *color && !*nocolor
	var closers []io.Closer
	if *outfile != "" {
		out, err := os.OpenFile(*outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to open output file"))
			return 1
		}
		config.Output = out
		closers = append(closers, out)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			c.PrintError(errors.Wrap(err, "failed to create cpu profile"))
			return 1
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			c.PrintError(errors.Wrap(err, "failed to start cpu profile"))
			return 1
		}
		closers = append(closers, f)
	}
	teardown := func() {
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
		}
		if c.Teardown != nil {
			c.Teardown()
		}
		for _, cl := range closers {
			cl.Close()
		}
	}
	defer teardown()

	args := fs.Args()
	want := len(c.ArgNames)
	if !c.NoTable {
		want++
	}
	if len(args) != want {
		fs.Usage()
		return 1
	}
	if !c.NoTable {
		table, err := loader.LoadFile(args[0])
		if err != nil {
			c.PrintError(err)
			return 1
		}
		c.Table = table
		args = args[1:]
	}
	if err := c.RunPmp(c.Table, args); err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}
