package models

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

type Config struct {
	Color   bool
	Verbose bool
	// diagnostics and -v explanations, defaults to stderr
	Output io.Writer
	// verdicts and tables, defaults to stdout
	Stdout io.Writer
}

// NewConfig returns a config writing to the process stdio, with colour
// enabled when stdout is a terminal.
func NewConfig() *Config {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	c := &Config{Color: color, Output: os.Stderr, Stdout: os.Stdout}
	if color {
		c.Stdout = colorable.NewColorableStdout()
	}
	return c
}

func (c *Config) Init() *Config {
	if c.Output == nil {
		c.Output = os.Stderr
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	return c
}

func (c *Config) Printf(f string, args ...interface{}) {
	fmt.Fprintf(c.Output, f, args...)
}

// Debugf only prints in verbose mode.
func (c *Config) Debugf(f string, args ...interface{}) {
	if c.Verbose {
		fmt.Fprintf(c.Output, f, args...)
	}
}

func (c *Config) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout, args...)
}
