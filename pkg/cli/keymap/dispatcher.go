package keymap

import (
	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/ui"
)

var logger = logutil.GetLogger("[keymap] ")

// Config keeps the configuration of a Dispatcher.
type Config struct {
	// Key bindings. Required.
	Table *Table
	// The mode a session starts in.
	Start ModeID
	// The buffer commands operate on. Required.
	Buffer *linebuf.Buffer
	// Called for keys that cannot be resolved to a command. If nil, alerts
	// are ignored.
	Alert func()
	// Called before every command invocation. If nil, nothing is called.
	BeforeCommand func(Command)
}

// Dispatcher resolves keys to commands under the current editing mode.
type Dispatcher struct {
	cfg   Config
	state *State

	mode  *Mode
	count Count
	// Node reached by the keys of an incomplete sequence, and the last of
	// those keys. node is nil when the walk is at the root.
	node    *Node
	lastKey ui.Key
	pending ui.Keys
}

// NewDispatcher creates a new Dispatcher in the start mode. It panics if the
// start mode is not defined.
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Alert == nil {
		cfg.Alert = func() {}
	}
	if cfg.BeforeCommand == nil {
		cfg.BeforeCommand = func(Command) {}
	}
	d := &Dispatcher{cfg: cfg, mode: cfg.Table.Mode(cfg.Start)}
	d.state = &State{Buffer: cfg.Buffer, d: d}
	return d
}

// State returns the state shared by the commands.
func (d *Dispatcher) State() *State { return d.state }

// Mode returns the current mode.
func (d *Dispatcher) Mode() ModeID { return d.mode.ID }

// Count returns the pending count.
func (d *Dispatcher) Count() Count { return d.count }

// Pending returns the keys of an incomplete sequence.
func (d *Dispatcher) Pending() ui.Keys { return append(ui.Keys(nil), d.pending...) }

// Reset starts a new edit session: the start mode is current, nothing is
// pending, and the status is active.
func (d *Dispatcher) Reset() {
	d.SwitchMode(d.cfg.Start)
	d.state.Status = StatusActive
}

// SwitchMode makes a mode current and clears the pending count and any
// incomplete sequence. It panics if the mode is not defined.
func (d *Dispatcher) SwitchMode(id ModeID) {
	d.mode = d.cfg.Table.Mode(id)
	d.count = NoCount
	d.resetWalk()
}

// Handle feeds one key to the current mode.
func (d *Dispatcher) Handle(k ui.Key) {
	from := d.node
	if from == nil {
		from = d.mode.trie
	}
	next, res := Step(from, k)
	switch res {
	case Match:
		d.resetWalk()
		cmd, _ := next.Command()
		d.invoke(cmd, k)
	case Partial:
		d.node = next
		d.lastKey = k
		d.pending = append(d.pending, k)
	case NoMatch:
		if d.node == nil {
			if def, ok := d.mode.Default(); ok {
				d.invoke(def, k)
			} else {
				d.cfg.Alert()
			}
			return
		}
		walked, lastKey, keys := d.node, d.lastKey, append(d.pending, k)
		d.resetWalk()
		if cmd, ok := walked.Command(); ok {
			// The walked keys form a shorter binding; use it and start over
			// with k.
			d.invoke(cmd, lastKey)
			if d.state.Status == StatusActive {
				d.Handle(k)
			}
		} else {
			logger.Printf("unbound sequence %q in mode %s", keys.String(), d.mode.ID)
			d.cfg.Alert()
		}
	}
}

// Flush resolves an incomplete sequence that is itself bound. It returns
// whether a command was invoked. An incomplete sequence that is not bound is
// discarded with an alert.
func (d *Dispatcher) Flush() bool {
	if d.node == nil {
		return false
	}
	walked, lastKey := d.node, d.lastKey
	d.resetWalk()
	if cmd, ok := walked.Command(); ok {
		d.invoke(cmd, lastKey)
		return true
	}
	d.cfg.Alert()
	return false
}

// Interrupt abandons the session: any incomplete sequence and pending count
// are discarded and the status becomes StatusInterrupted. The buffer is left
// as it is.
func (d *Dispatcher) Interrupt() {
	d.resetWalk()
	d.count = NoCount
	d.state.Status = StatusInterrupted
}

func (d *Dispatcher) resetWalk() {
	d.node = nil
	d.lastKey = ui.Key{}
	d.pending = nil
}

func (d *Dispatcher) invoke(cmd Command, k ui.Key) {
	c := d.count
	d.count = NoCount
	d.cfg.BeforeCommand(cmd)
	cmd.Fn(d.state, c, k)
}
