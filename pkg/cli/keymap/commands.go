package keymap

import (
	"unicode"

	"src.yle.sh/pkg/ui"
)

const (
	// Counts larger than this are rejected by digit-argument.
	maxCount = 999999999
	// Insertions repeated more than this many times are rejected.
	maxInsertCount = 1000
)

// Basic editing commands.
var (
	Noop               = Command{"noop", func(*State, Count, ui.Key) {}}
	Alert              = Command{"alert", func(st *State, _ Count, _ ui.Key) { st.Alert() }}
	SelfInsert         = Command{"self-insert", selfInsert}
	InsertBackslash    = Command{"insert-backslash", insertBackslash}
	AcceptLine         = Command{"accept-line", func(st *State, _ Count, _ ui.Key) { st.Status = StatusDone }}
	AbortLine          = Command{"abort-line", func(st *State, _ Count, _ ui.Key) { st.Status = StatusInterrupted }}
	SetModeViInsert    = setMode("setmode-viinsert", ViInsert)
	SetModeViCommand   = setMode("setmode-vicommand", ViCommand)
	SetModeEmacs       = setMode("setmode-emacs", Emacs)
	DigitArgument      = Command{"digit-argument", digitArgument}
	ViZero             = Command{"vi-zero", viZero}
	ForwardChar        = Command{"forward-char", forwardChar}
	BackwardChar       = Command{"backward-char", backwardChar}
	BeginningOfLine    = Command{"beginning-of-line", func(st *State, _ Count, _ ui.Key) { st.Buffer.SetDot(0) }}
	EndOfLine          = Command{"end-of-line", func(st *State, _ Count, _ ui.Key) { st.Buffer.SetDot(st.Buffer.Len()) }}
	DeleteChar         = Command{"delete-char", deleteChar}
	BackwardDeleteChar = Command{"backward-delete-char", backwardDeleteChar}
	KillLine           = Command{"kill-line", killLine}
	BackwardKillLine   = Command{"backward-kill-line", backwardKillLine}
)

// Builtins lists the basic commands, so that they can be looked up by name.
var Builtins = []Command{
	Noop, Alert, SelfInsert, InsertBackslash, AcceptLine, AbortLine,
	SetModeViInsert, SetModeViCommand, SetModeEmacs, DigitArgument, ViZero,
	ForwardChar, BackwardChar, BeginningOfLine, EndOfLine,
	DeleteChar, BackwardDeleteChar, KillLine, BackwardKillLine,
}

func setMode(name string, id ModeID) Command {
	return Command{name, func(st *State, _ Count, _ ui.Key) { st.SwitchMode(id) }}
}

func insertable(k ui.Key) bool {
	return k.Mod == 0 && k.Rune >= 0 && unicode.IsPrint(k.Rune)
}

// Inserts the key count times at the cursor.
func selfInsert(st *State, c Count, k ui.Key) {
	if !insertable(k) {
		st.Alert()
		return
	}
	insertRepeated(st, k.Rune, c.Or(1))
}

// Inserts a backslash count times.
func insertBackslash(st *State, c Count, _ ui.Key) {
	insertRepeated(st, '\\', c.Or(1))
}

func insertRepeated(st *State, r rune, n int) {
	if n <= 0 {
		return
	}
	if n > maxInsertCount {
		st.Alert()
		return
	}
	text := make([]rune, n)
	for i := range text {
		text[i] = r
	}
	dot := st.Buffer.Dot()
	st.Buffer.Insert(dot, string(text))
	st.Buffer.SetDot(dot + n)
}

// Appends the digit of the key to the pending count. The key may carry the
// Alt modifier, as in the emacs bindings.
func digitArgument(st *State, c Count, k ui.Key) {
	if k.Mod&^ui.Alt != 0 || k.Rune < '0' || k.Rune > '9' {
		st.Alert()
		return
	}
	n, _ := c.Get()
	n = n*10 + int(k.Rune-'0')
	if n > maxCount {
		st.Alert()
		n = maxCount
	}
	st.SetCount(CountOf(n))
}

// Continues a count when one is pending, and moves to the beginning of line
// otherwise.
func viZero(st *State, c Count, k ui.Key) {
	if _, ok := c.Get(); ok {
		digitArgument(st, c, k)
		return
	}
	st.Buffer.SetDot(0)
}

func forwardChar(st *State, c Count, _ ui.Key) {
	st.Buffer.SetDot(clamp(st.Buffer.Dot()+c.Or(1), 0, st.Buffer.Len()))
}

func backwardChar(st *State, c Count, _ ui.Key) {
	st.Buffer.SetDot(clamp(st.Buffer.Dot()-c.Or(1), 0, st.Buffer.Len()))
}

func deleteChar(st *State, c Count, _ ui.Key) {
	dot := st.Buffer.Dot()
	n := clamp(c.Or(1), 0, st.Buffer.Len()-dot)
	if n == 0 {
		st.Alert()
		return
	}
	st.Buffer.Remove(dot, n)
}

func backwardDeleteChar(st *State, c Count, _ ui.Key) {
	dot := st.Buffer.Dot()
	n := clamp(c.Or(1), 0, dot)
	if n == 0 {
		st.Alert()
		return
	}
	st.Buffer.Remove(dot-n, n)
	st.Buffer.SetDot(dot - n)
}

func killLine(st *State, _ Count, _ ui.Key) {
	dot := st.Buffer.Dot()
	st.Buffer.Remove(dot, st.Buffer.Len()-dot)
}

func backwardKillLine(st *State, _ Count, _ ui.Key) {
	dot := st.Buffer.Dot()
	st.Buffer.Remove(0, dot)
	st.Buffer.SetDot(0)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
