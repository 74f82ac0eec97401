// Package keymap implements the modal key dispatcher of the line editor.
//
// Each editing mode owns a trie mapping key sequences to commands, plus an
// optional default command invoked for keys that start no bound sequence. A
// Dispatcher feeds keys one at a time into the trie of the current mode and
// invokes the resolved commands against a shared State.
package keymap

import (
	"fmt"
	"strconv"

	"src.yle.sh/pkg/ui"
)

// Command is a named editing command. Commands are compared by name.
type Command struct {
	Name string
	Fn   func(st *State, c Count, k ui.Key)
}

// Count is a pending numeric argument typed before a command. The zero value
// is NoCount; 0 is a valid typed count and is distinct from it.
type Count struct {
	n   int
	set bool
}

// NoCount is the Count when no count has been typed.
var NoCount = Count{}

// CountOf returns a Count with value n.
func CountOf(n int) Count { return Count{n, true} }

// Get returns the value of the count and whether it was typed.
func (c Count) Get() (int, bool) { return c.n, c.set }

// Or returns the value of the count, or def if no count was typed.
func (c Count) Or(def int) int {
	if c.set {
		return c.n
	}
	return def
}

func (c Count) String() string {
	if !c.set {
		return "(none)"
	}
	return strconv.Itoa(c.n)
}

// ConfigError is returned when building a mode table from a malformed
// binding. It is fatal to initialization and never occurs once the table is
// built.
type ConfigError struct {
	Mode ModeID
	Seq  ui.Keys
	Msg  string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Mode.valid() && len(e.Seq) > 0:
		return fmt.Sprintf("mode %s, keys %q: %s", e.Mode, e.Seq.String(), e.Msg)
	case e.Mode.valid():
		return fmt.Sprintf("mode %s: %s", e.Mode, e.Msg)
	default:
		return e.Msg
	}
}

// PreconditionViolation is the panic value used when an internal invariant
// is broken, such as switching to an undefined mode.
type PreconditionViolation struct {
	Msg string
}

func (e PreconditionViolation) Error() string { return "keymap: " + e.Msg }
