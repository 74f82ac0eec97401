package keymap

import "src.yle.sh/pkg/cli/linebuf"

// Status is the completion state of an edit session.
type Status int

// Possible values of Status.
const (
	// StatusActive means that the line is still being edited.
	StatusActive Status = iota
	// StatusDone means that the line has been accepted.
	StatusDone
	// StatusInterrupted means that the line has been abandoned.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDone:
		return "done"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "bad-status"
	}
}

// State is the state shared by all commands of a Dispatcher.
type State struct {
	Buffer *linebuf.Buffer
	Status Status

	d *Dispatcher
}

// Mode returns the current mode.
func (st *State) Mode() ModeID { return st.d.Mode() }

// SwitchMode makes a mode current; subsequent keys are dispatched under its
// bindings. The pending count is cleared.
func (st *State) SwitchMode(id ModeID) { st.d.SwitchMode(id) }

// SetCount sets the pending count, which is passed to the next command.
func (st *State) SetCount(c Count) { st.d.count = c }

// Alert signals the user that a command could not be carried out.
func (st *State) Alert() { st.d.cfg.Alert() }
