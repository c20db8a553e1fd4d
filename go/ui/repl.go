package ui

import (
	"io"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/Hafsa-shoaib989/pmpcheck/go/models"
	"github.com/Hafsa-shoaib989/pmpcheck/go/models/pmp"
)

type Repl struct {
	ctx *Context
	rl  *readline.Instance
}

func NewRepl(table *pmp.Table, config *models.Config) (*Repl, error) {
	// get history path
	configDirs := configdir.New("pmpcheck", "repl")
	cacheDir := configDirs.QueryCacheFolder()
	historyPath := ""
	if err := cacheDir.MkdirAll(); err == nil {
		historyPath = filepath.Join(cacheDir.Path, "history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pmp> ",
		InterruptPrompt: "\n",
		HistoryFile:     historyPath,
	})
	if err != nil {
		return nil, err
	}
	ctx := &Context{Writer: rl.Stdout(), Table: table, Color: config.Color}
	return &Repl{ctx: ctx, rl: rl}, nil
}

func (r *Repl) Run() error {
	defer r.Close()
	for {
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if !Exec(r.ctx, line) {
			return nil
		}
	}
}

func (r *Repl) Close() {
	r.rl.Close()
}
