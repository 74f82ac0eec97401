// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.yle.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"echo foo", "echo bar", "echo foo", "ls -l"}
	wantCmds = []storedefs.Cmd{
		{Text: "echo foo", Seq: 1},
		{Text: "echo bar", Seq: 2},
		{Text: "echo foo", Seq: 3},
		{Text: "ls -l", Seq: 4},
	}
)

// TestCmd tests the command history functionality of a Store. The Store
// must be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> %v, %v, want %v, nil", cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil", endSeq, err, wantedEndSeq)
	}

	for i, wantCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> %v, %v, want %v, nil", seq, cmd, err, wantCmd)
		}
	}
	if _, err := store.Cmd(100); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(100) -> error %v, want ErrNoMatchingCmd", err)
	}

	got, err := store.CmdsWithSeq(1, 5)
	if diff := cmp.Diff(wantCmds, got); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq(1, 5) (-want +got):\n%s(err: %v)", diff, err)
	}
	got, err = store.CmdsWithSeq(2, 4)
	if diff := cmp.Diff(wantCmds[1:3], got); diff != "" || err != nil {
		t.Errorf("store.CmdsWithSeq(2, 4) (-want +got):\n%s(err: %v)", diff, err)
	}

	for _, test := range []struct {
		prev    bool
		seq     int
		prefix  string
		wantCmd storedefs.Cmd
		wantErr error
	}{
		{false, 1, "echo", wantCmds[0], nil},
		{false, 2, "echo", wantCmds[1], nil},
		{false, 2, "echo f", wantCmds[2], nil},
		{false, 4, "echo", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{true, 4, "echo", wantCmds[2], nil},
		{true, 3, "echo", wantCmds[1], nil},
		{true, 100, "", wantCmds[3], nil},
		{true, 1, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	} {
		f, name := store.NextCmd, "NextCmd"
		if test.prev {
			f, name = store.PrevCmd, "PrevCmd"
		}
		cmd, err := f(test.seq, test.prefix)
		if cmd != test.wantCmd || err != test.wantErr {
			t.Errorf("store.%s(%v, %q) -> %v, %v, want %v, %v",
				name, test.seq, test.prefix, cmd, err, test.wantCmd, test.wantErr)
		}
	}

	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v, want nil", err)
	}
	if _, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after DelCmd(1) -> error %v, want ErrNoMatchingCmd", err)
	}
}
