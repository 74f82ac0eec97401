package edit

import (
	"errors"

	"src.yle.sh/pkg/cli/keymap"
	"src.yle.sh/pkg/store/storedefs"
	"src.yle.sh/pkg/ui"
)

var completionCommands = map[string]bool{
	"complete":                true,
	"complete-next-candidate": true,
	"complete-prev-candidate": true,
	"complete-all":            true,
	"clear-candidates":        true,
}

var historyCommands = map[string]bool{
	"history-prev": true,
	"history-next": true,
}

func (ed *Editor) editorCommands() []keymap.Command {
	return []keymap.Command{
		{Name: "complete", Fn: func(st *keymap.State, _ keymap.Count, _ ui.Key) {
			ed.beginCompletion(st)
		}},
		{Name: "complete-next-candidate", Fn: func(st *keymap.State, c keymap.Count, _ ui.Key) {
			ed.cycleCompletion(st, c.Or(1))
		}},
		{Name: "complete-prev-candidate", Fn: func(st *keymap.State, c keymap.Count, _ ui.Key) {
			ed.cycleCompletion(st, -c.Or(1))
		}},
		{Name: "complete-all", Fn: func(st *keymap.State, _ keymap.Count, _ ui.Key) {
			if ed.comp.ExpandAll() == 0 {
				st.Alert()
			}
		}},
		{Name: "clear-candidates", Fn: func(*keymap.State, keymap.Count, ui.Key) {
			ed.comp.Cleanup()
		}},
		{Name: "history-prev", Fn: func(st *keymap.State, c keymap.Count, _ ui.Key) {
			for i := 0; i < c.Or(1); i++ {
				if !ed.hist.prev(ed, st) {
					st.Alert()
					return
				}
			}
		}},
		{Name: "history-next", Fn: func(st *keymap.State, c keymap.Count, _ ui.Key) {
			for i := 0; i < c.Or(1); i++ {
				if !ed.hist.next(ed, st) {
					st.Alert()
					return
				}
			}
		}},
		{Name: "eof-if-empty", Fn: func(st *keymap.State, _ keymap.Count, _ ui.Key) {
			if st.Buffer.Len() == 0 {
				ed.requestEOF(st)
			} else {
				st.Alert()
			}
		}},
		{Name: "eof-or-delete", Fn: func(st *keymap.State, c keymap.Count, k ui.Key) {
			if st.Buffer.Len() == 0 {
				ed.requestEOF(st)
			} else {
				keymap.DeleteChar.Fn(st, c, k)
			}
		}},
	}
}

func (ed *Editor) requestEOF(st *keymap.State) {
	ed.eof = true
	st.Status = keymap.StatusInterrupted
}

func (ed *Editor) beginCompletion(st *keymap.State) {
	if ed.comp.Begin() == 0 {
		st.Alert()
	}
}

// Cycling starts a new completion when none is in progress.
func (ed *Editor) cycleCompletion(st *keymap.State, offset int) {
	if !ed.comp.Active() {
		ed.beginCompletion(st)
		return
	}
	ed.comp.Cycle(offset)
}

// histWalk keeps the position of walking the command history.
type histWalk struct {
	active bool
	// Sequence number of the command shown.
	seq int
	// The line before the walk started.
	saved string
}

func (h *histWalk) reset() { *h = histWalk{} }

// Shows the previous command. It returns false when there is none.
func (h *histWalk) prev(ed *Editor, st *keymap.State) bool {
	if ed.store == nil {
		return false
	}
	upto := h.seq
	if !h.active {
		next, err := ed.store.NextCmdSeq()
		if err != nil {
			logger.Printf("history: %v", err)
			return false
		}
		upto = next
	}
	cmd, err := ed.store.PrevCmd(upto, "")
	if err != nil {
		if !errors.Is(err, storedefs.ErrNoMatchingCmd) {
			logger.Printf("history: %v", err)
		}
		return false
	}
	if !h.active {
		h.active, h.saved = true, st.Buffer.String()
	}
	h.seq = cmd.Seq
	st.Buffer.Reset(cmd.Text)
	return true
}

// Shows the next command, or the line before the walk after the last one.
// It returns false when not walking.
func (h *histWalk) next(ed *Editor, st *keymap.State) bool {
	if !h.active {
		return false
	}
	cmd, err := ed.store.NextCmd(h.seq+1, "")
	if err != nil {
		if !errors.Is(err, storedefs.ErrNoMatchingCmd) {
			logger.Printf("history: %v", err)
		}
		st.Buffer.Reset(h.saved)
		h.reset()
		return true
	}
	h.seq = cmd.Seq
	st.Buffer.Reset(cmd.Text)
	return true
}
