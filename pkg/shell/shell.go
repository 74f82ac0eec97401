// Package shell is the entry point for the interactive line editor of yle.
//
// It reads lines from the user and prints each accepted line to stdout. When
// stdin is a terminal, lines are read with the line editor; otherwise a
// minimal line reader is used.
package shell

import (
	"fmt"
	"os"

	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct {
	keymap    string
	db        string
	compDebug *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.keymap, "keymap", "",
		"path to a YAML file with key bindings applied over the default ones")
	fs.StringVar(&p.db, "db", "",
		"path to the history database; defaults to a file in the state directory")
	p.compDebug = fs.CompDebug()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed")
	}

	cfg := &InteractConfig{Prompt: defaultPrompt, Keymap: p.keymap, DB: p.db}
	if cfg.DB == "" {
		db, err := dbPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		}
		cfg.DB = db
	}

	trace, closeTrace, err := prog.OpenCompDebug(*p.compDebug)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
	} else {
		defer closeTrace()
		cfg.CompDebug = trace
	}

	return Interact(fds, cfg)
}
