// Package edit implements the interactive line editor.
//
// The editor glues the modal key dispatcher of the keymap package, the
// completion engine of the complete package and a terminal together, and
// records accepted lines in the command history.
package edit

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"src.yle.sh/pkg/cli/keymap"
	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/cli/term"
	"src.yle.sh/pkg/edit/complete"
	"src.yle.sh/pkg/edit/keyconf"
	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/store/storedefs"
	"src.yle.sh/pkg/ui"
)

var logger = logutil.GetLogger("[edit] ")

// ErrInterrupted is returned by ReadCode when the line is abandoned.
var ErrInterrupted = errors.New("interrupted")

//go:embed default_keymap.yaml
var defaultKeymap []byte

// TTY is the terminal the editor runs on. It is implemented by *term.TTY.
type TTY interface {
	ReadKey() (ui.Key, error)
	Render(term.Screen) error
	Finish() error
	Alert() error
}

// Config keeps the configuration of an Editor.
type Config struct {
	// Written before the line.
	Prompt string
	// Command history. If nil, accepted lines are not recorded and the
	// history commands alert.
	Store storedefs.Store
	// Source of completion candidates. If nil, command names are completed
	// from the history and files, and arguments from files.
	Generator complete.Generator
	// Applied on top of the default key bindings. May be nil.
	Keymap *keyconf.Config
	// Receives completion traces. If nil, completion is not traced.
	CompDebug io.Writer
}

// Editor is an interactive line editor.
type Editor struct {
	tty    TTY
	prompt string
	store  storedefs.Store

	buf      *linebuf.Buffer
	d        *keymap.Dispatcher
	comp     *complete.Engine
	commands map[string]keymap.Command

	hist histWalk
	eof  bool
}

// NewEditor creates an Editor. It returns an error if the key bindings in
// cfg.Keymap cannot be applied; the error may wrap several
// *keymap.ConfigError values.
func NewEditor(tty TTY, cfg Config) (*Editor, error) {
	ed := &Editor{
		tty: tty, prompt: cfg.Prompt, store: cfg.Store,
		buf: linebuf.New(""),
	}

	gen := cfg.Generator
	if gen == nil {
		gen = defaultGenerator(cfg.Store)
	}
	ed.comp = complete.New(ed.buf, complete.Config{
		Generator: gen,
		Trace:     logutil.Prefixed(cfg.CompDebug, "[compdebug] "),
	})

	ed.commands = make(map[string]keymap.Command)
	for _, cmd := range keymap.Builtins {
		ed.commands[cmd.Name] = cmd
	}
	for _, cmd := range ed.editorCommands() {
		ed.commands[cmd.Name] = cmd
	}

	table := keymap.NewTable()
	start, err := ed.applyKeymap(table, cfg.Keymap)
	if err != nil {
		return nil, err
	}
	ed.d = keymap.NewDispatcher(keymap.Config{
		Table:         table,
		Start:         start,
		Buffer:        ed.buf,
		Alert:         func() { ed.tty.Alert() },
		BeforeCommand: ed.beforeCommand,
	})
	return ed, nil
}

func defaultGenerator(st storedefs.Store) complete.Generator {
	if st == nil {
		return complete.FileNames
	}
	return complete.ByPosition(
		complete.Merge(complete.History(st), complete.FileNames),
		complete.FileNames)
}

func (ed *Editor) applyKeymap(table *keymap.Table, user *keyconf.Config) (keymap.ModeID, error) {
	def, err := keyconf.Parse(defaultKeymap)
	if err != nil {
		panic(fmt.Sprintf("bad default keymap: %v", err))
	}
	start, err := def.Apply(table, ed.Command)
	if err != nil {
		panic(fmt.Sprintf("bad default keymap: %v", err))
	}
	if user != nil {
		userStart, err := user.Apply(table, ed.Command)
		if err != nil {
			return keymap.NoMode, err
		}
		if userStart != keymap.NoMode {
			start = userStart
		}
	}
	return start, nil
}

// Command looks up a command by name.
func (ed *Editor) Command(name string) (keymap.Command, bool) {
	cmd, ok := ed.commands[name]
	return cmd, ok
}

// Mode returns the current editing mode.
func (ed *Editor) Mode() keymap.ModeID { return ed.d.Mode() }

// Runs before every command. Completion state only survives completion
// commands, and the history walk only survives history commands.
func (ed *Editor) beforeCommand(cmd keymap.Command) {
	if !completionCommands[cmd.Name] {
		ed.comp.Cleanup()
	}
	if !historyCommands[cmd.Name] {
		ed.hist.reset()
	}
}

// ReadCode reads one line from the user.
//
// It returns ErrInterrupted if the line is abandoned, and io.EOF if the input
// ends or end of file is requested on an empty line. An error reading the
// terminal is returned as is.
func (ed *Editor) ReadCode() (string, error) {
	ed.buf.Reset("")
	ed.comp.Cleanup()
	ed.hist.reset()
	ed.eof = false
	ed.d.Reset()
	ed.redraw()

	for {
		k, err := ed.tty.ReadKey()
		if err != nil {
			ed.d.Flush()
			if err == io.EOF && ed.d.State().Status == keymap.StatusActive && ed.buf.Len() > 0 {
				// Treat the unfinished line as accepted.
				ed.d.State().Status = keymap.StatusDone
			}
			if ed.d.State().Status != keymap.StatusDone {
				ed.tty.Finish()
				return "", err
			}
		} else {
			ed.d.Handle(k)
		}

		switch ed.d.State().Status {
		case keymap.StatusDone:
			ed.comp.Cleanup()
			ed.redraw()
			ed.tty.Finish()
			line := ed.buf.String()
			ed.addHistory(line)
			return line, nil
		case keymap.StatusInterrupted:
			ed.comp.Cleanup()
			ed.redraw()
			ed.tty.Finish()
			if ed.eof {
				return "", io.EOF
			}
			return "", ErrInterrupted
		}
		ed.redraw()
	}
}

func (ed *Editor) addHistory(line string) {
	if ed.store == nil || strings.TrimSpace(line) == "" {
		return
	}
	if _, err := ed.store.AddCmd(line); err != nil {
		logger.Printf("failed to add command to history: %v", err)
	}
}

func (ed *Editor) redraw() {
	s := term.Screen{
		Prompt: ed.prompt, Line: ed.buf.String(), Dot: ed.buf.Dot(),
		Selected: -1,
	}
	if cands := ed.comp.Candidates(); len(cands) > 0 {
		s.Items = make([]term.Item, len(cands))
		for i, c := range cands {
			s.Items[i] = term.Item{Text: c.Display(), Width: c.Width}
		}
		if i, ok := ed.comp.Selected().Get(); ok {
			s.Selected = i
		}
	}
	if err := ed.tty.Render(s); err != nil {
		logger.Printf("render: %v", err)
	}
}
