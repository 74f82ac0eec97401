package keymap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/ui"
)

type invocation struct {
	Name  string
	Count Count
	Key   ui.Key
}

// fixture records command invocations and alerts.
type fixture struct {
	t      *testing.T
	table  *Table
	calls  []invocation
	alerts int
	d      *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, table: NewTable()}
}

func (f *fixture) recorder(name string) Command {
	return Command{name, func(_ *State, c Count, k ui.Key) {
		f.calls = append(f.calls, invocation{name, c, k})
	}}
}

func (f *fixture) bind(mode ModeID, seq string, cmd Command) {
	f.t.Helper()
	if err := f.table.Register(mode, mustParseKeys(seq), cmd); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) start(mode ModeID) *Dispatcher {
	f.d = NewDispatcher(Config{
		Table: f.table, Start: mode, Buffer: linebuf.New(""),
		Alert: func() { f.alerts++ },
	})
	return f.d
}

func (f *fixture) feed(seq string) {
	for _, k := range mustParseKeys(seq) {
		f.d.Handle(k)
	}
}

func (f *fixture) wantCalls(want ...invocation) {
	f.t.Helper()
	if diff := cmp.Diff(want, f.calls, cmp.AllowUnexported(Count{})); diff != "" {
		f.t.Errorf("invocations (-want +got):\n%s", diff)
	}
	f.calls = nil
}

func TestHandle_BoundSequenceInvokesOnce(t *testing.T) {
	f := newFixture(t)
	f.bind(ViInsert, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.table.SetDefault(ViInsert, f.recorder("def"))
	f.start(ViInsert)

	f.feed("Ctrl-X")
	f.wantCalls()
	if got := f.d.Pending().String(); got != "Ctrl-X" {
		t.Errorf("Pending() = %q, want Ctrl-X", got)
	}
	f.feed("Ctrl-E")
	f.wantCalls(invocation{"x", NoCount, ui.K('E', ui.Ctrl)})
	if len(f.d.Pending()) != 0 {
		t.Errorf("walk not reset after match")
	}
}

func TestHandle_RootMissInvokesDefault(t *testing.T) {
	f := newFixture(t)
	f.bind(ViInsert, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.table.SetDefault(ViInsert, f.recorder("def"))
	f.start(ViInsert)

	f.feed("a b")
	f.wantCalls(
		invocation{"def", NoCount, ui.K('a')},
		invocation{"def", NoCount, ui.K('b')})
	if f.alerts != 0 {
		t.Errorf("got %d alerts, want 0", f.alerts)
	}
}

func TestHandle_RootMissWithoutDefaultAlerts(t *testing.T) {
	f := newFixture(t)
	f.start(ViCommand)
	f.feed("q")
	f.wantCalls()
	if f.alerts != 1 {
		t.Errorf("got %d alerts, want 1", f.alerts)
	}
}

func TestHandle_MissAfterUnboundPrefixAlerts(t *testing.T) {
	f := newFixture(t)
	f.bind(ViInsert, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.table.SetDefault(ViInsert, f.recorder("def"))
	f.start(ViInsert)

	f.feed("Ctrl-X a")
	f.wantCalls()
	if f.alerts != 1 {
		t.Errorf("got %d alerts, want 1", f.alerts)
	}
	// The walk is back at the root.
	f.feed("b")
	f.wantCalls(invocation{"def", NoCount, ui.K('b')})
}

func TestHandle_LongestMatchFallsBack(t *testing.T) {
	f := newFixture(t)
	f.bind(ViCommand, "g", f.recorder("short"))
	f.bind(ViCommand, "g g", f.recorder("long"))
	f.bind(ViCommand, "l", f.recorder("l"))
	f.start(ViCommand)

	f.feed("g g")
	f.wantCalls(invocation{"long", NoCount, ui.K('g')})

	// The shorter binding fires, then the key is dispatched from the root.
	f.feed("g l")
	f.wantCalls(
		invocation{"short", NoCount, ui.K('g')},
		invocation{"l", NoCount, ui.K('l')})
}

func TestFlush(t *testing.T) {
	f := newFixture(t)
	f.bind(ViCommand, "g", f.recorder("short"))
	f.bind(ViCommand, "g g", f.recorder("long"))
	f.bind(ViCommand, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.start(ViCommand)

	if f.d.Flush() {
		t.Errorf("Flush() with nothing pending returned true")
	}
	f.feed("g")
	if !f.d.Flush() {
		t.Errorf("Flush() on a bound prefix returned false")
	}
	f.wantCalls(invocation{"short", NoCount, ui.K('g')})

	f.feed("Ctrl-X")
	if f.d.Flush() {
		t.Errorf("Flush() on an unbound prefix returned true")
	}
	if f.alerts != 1 {
		t.Errorf("got %d alerts, want 1", f.alerts)
	}
}

func TestCount_PassedAndReset(t *testing.T) {
	f := newFixture(t)
	f.bind(ViCommand, "1", DigitArgument)
	f.bind(ViCommand, "2", DigitArgument)
	f.bind(ViCommand, "0", ViZero)
	f.bind(ViCommand, "l", f.recorder("l"))
	f.start(ViCommand)

	f.feed("1 2 0 l l")
	f.wantCalls(
		invocation{"l", CountOf(120), ui.K('l')},
		invocation{"l", NoCount, ui.K('l')})
}

func TestSwitchMode_ResetsCountAndWalk(t *testing.T) {
	f := newFixture(t)
	f.bind(ViCommand, "2", DigitArgument)
	f.bind(ViCommand, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.bind(ViInsert, "l", f.recorder("insert-l"))
	f.bind(ViCommand, "l", f.recorder("command-l"))
	f.start(ViCommand)

	f.feed("2 Ctrl-X")
	f.d.SwitchMode(ViInsert)
	if _, ok := f.d.Count().Get(); ok {
		t.Errorf("count survives SwitchMode")
	}
	if len(f.d.Pending()) != 0 {
		t.Errorf("walk survives SwitchMode")
	}
	f.feed("l")
	f.wantCalls(invocation{"insert-l", NoCount, ui.K('l')})

	f.d.SwitchMode(ViCommand)
	f.feed("2")
	f.d.State().SwitchMode(ViCommand)
	f.feed("l")
	f.wantCalls(invocation{"command-l", NoCount, ui.K('l')})
}

func TestSwitchMode_UndefinedPanics(t *testing.T) {
	f := newFixture(t)
	f.start(ViInsert)
	defer func() {
		if _, ok := recover().(PreconditionViolation); !ok {
			t.Errorf("SwitchMode to an undefined mode did not panic with PreconditionViolation")
		}
	}()
	f.d.SwitchMode(ModeID(42))
}

func TestRegister_Errors(t *testing.T) {
	table := NewTable()
	var cerr *ConfigError
	err := table.Register(ModeID(42), mustParseKeys("a"), cmdA)
	if !errors.As(err, &cerr) {
		t.Errorf("Register to undefined mode returned %v", err)
	}
	err = table.Register(Emacs, nil, cmdA)
	if !errors.As(err, &cerr) || cerr.Mode != Emacs {
		t.Errorf("Register of empty sequence returned %v, want ConfigError in emacs", err)
	}
	if err := table.SetDefault(NoMode, cmdA); !errors.As(err, &cerr) {
		t.Errorf("SetDefault to undefined mode returned %v", err)
	}
}

func TestInterrupt(t *testing.T) {
	f := newFixture(t)
	f.bind(ViCommand, "3", DigitArgument)
	f.bind(ViCommand, "Ctrl-X Ctrl-E", f.recorder("x"))
	f.start(ViCommand)
	f.d.State().Buffer.Reset("echo")

	f.feed("3 Ctrl-X")
	f.d.Interrupt()
	if f.d.State().Status != StatusInterrupted {
		t.Errorf("status is %v, want interrupted", f.d.State().Status)
	}
	if _, ok := f.d.Count().Get(); ok || len(f.d.Pending()) != 0 {
		t.Errorf("Interrupt left count or walk behind")
	}
	if got := f.d.State().Buffer.String(); got != "echo" {
		t.Errorf("Interrupt changed buffer to %q", got)
	}

	f.d.Reset()
	if f.d.State().Status != StatusActive || f.d.Mode() != ViCommand {
		t.Errorf("Reset did not restore the initial state")
	}
}

func TestAcceptLine_StopsRefeed(t *testing.T) {
	f := newFixture(t)
	f.bind(ViInsert, "Ctrl-M", AcceptLine)
	f.bind(ViInsert, "Ctrl-M Ctrl-M", f.recorder("double"))
	f.table.SetDefault(ViInsert, f.recorder("def"))
	f.start(ViInsert)

	f.feed("Ctrl-M a")
	if f.d.State().Status != StatusDone {
		t.Errorf("status is %v, want done", f.d.State().Status)
	}
	f.wantCalls()
}

func TestBeforeCommand(t *testing.T) {
	table := NewTable()
	table.SetDefault(Emacs, SelfInsert)
	var seen []string
	d := NewDispatcher(Config{
		Table: table, Start: Emacs, Buffer: linebuf.New(""),
		BeforeCommand: func(c Command) { seen = append(seen, c.Name) },
	})
	d.Handle(ui.K('x'))
	if diff := cmp.Diff([]string{"self-insert"}, seen); diff != "" {
		t.Errorf("BeforeCommand calls (-want +got):\n%s", diff)
	}
}
