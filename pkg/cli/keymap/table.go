package keymap

import (
	"fmt"

	"src.yle.sh/pkg/ui"
)

// ModeID identifies an editing mode.
type ModeID int

// Editing modes.
const (
	ViInsert ModeID = iota
	ViCommand
	Emacs

	numModes
	// NoMode is never a defined mode. It is used in errors that are not
	// specific to a mode.
	NoMode ModeID = -1
)

var modeNames = [numModes]string{"vi-insert", "vi-command", "emacs"}

func (m ModeID) valid() bool { return 0 <= m && m < numModes }

func (m ModeID) String() string {
	if m.valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("(bad mode %d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (ModeID, bool) {
	for i, n := range modeNames {
		if n == name {
			return ModeID(i), true
		}
	}
	return NoMode, false
}

// Modes returns all the defined modes.
func Modes() []ModeID {
	modes := make([]ModeID, numModes)
	for i := range modes {
		modes[i] = ModeID(i)
	}
	return modes
}

// Mode is an editing mode: a set of key bindings and an optional default
// command.
type Mode struct {
	ID   ModeID
	trie *Node
	def  *Command
}

// Default returns the default command of the mode, if any.
func (m *Mode) Default() (Command, bool) {
	if m.def == nil {
		return Command{}, false
	}
	return *m.def, true
}

// Trie returns the root of the key trie of the mode.
func (m *Mode) Trie() *Node { return m.trie }

// Table holds every editing mode. It is built once at startup and only read
// afterwards.
type Table struct {
	modes [numModes]*Mode
}

// NewTable returns a Table where every mode has no bindings and no default
// command.
func NewTable() *Table {
	t := &Table{}
	for i := range t.modes {
		t.modes[i] = &Mode{ID: ModeID(i), trie: NewTrie()}
	}
	return t
}

// Register binds a key sequence in a mode.
func (t *Table) Register(mode ModeID, seq []ui.Key, cmd Command) error {
	if !mode.valid() {
		return &ConfigError{Mode: NoMode, Seq: seq, Msg: "undefined mode " + mode.String()}
	}
	err := t.modes[mode].trie.Insert(seq, cmd)
	if cerr, ok := err.(*ConfigError); ok {
		cerr.Mode = mode
		cerr.Seq = seq
	}
	return err
}

// SetDefault sets the default command of a mode.
func (t *Table) SetDefault(mode ModeID, cmd Command) error {
	if !mode.valid() {
		return &ConfigError{Mode: NoMode, Msg: "undefined mode " + mode.String()}
	}
	if cmd.Fn == nil {
		return &ConfigError{Mode: mode, Msg: "command " + cmd.Name + " has no body"}
	}
	t.modes[mode].def = &cmd
	return nil
}

// Mode returns the mode with the given ID. It panics if the mode is not
// defined.
func (t *Table) Mode(id ModeID) *Mode {
	if !id.valid() {
		panic(PreconditionViolation{"undefined mode " + id.String()})
	}
	return t.modes[id]
}
