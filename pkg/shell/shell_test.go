package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "src.yle.sh/pkg/shell"

	"src.yle.sh/pkg/must"
	"src.yle.sh/pkg/prog/progtest"
	"src.yle.sh/pkg/store"
	"src.yle.sh/pkg/store/storedefs"
	"src.yle.sh/pkg/testutil"
)

var (
	Test    = progtest.Test
	ThatYle = progtest.ThatYle
)

func TestShell_NotTerminal(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, &Program{},
		ThatYle("-db", "db").WithStdin("foo\nbar\r\n\nlast").
			WritesStdout("foo\nbar\n\nlast\n").
			WritesStderr("> > > > > "),
		ThatYle("-db", "db").WithStdin("").WritesStderr("> "),
	)

	st := must.OK1(store.NewStore("db"))
	defer st.Close()
	cmds := must.OK1(st.CmdsWithSeq(0, 100))
	want := []storedefs.Cmd{{Text: "foo", Seq: 1}, {Text: "bar", Seq: 2}, {Text: "last", Seq: 3}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
}

func TestShell_DefaultDBPath(t *testing.T) {
	dir := testutil.InTempDir(t)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	Test(t, &Program{},
		ThatYle().WithStdin("foo\n").WritesStdout("foo\n").WritesStderr("> > "),
	)

	if _, err := os.Stat(filepath.Join(dir, "state", "yle", "db.bolt")); err != nil {
		t.Errorf("history database not created: %v", err)
	}
}

func TestShell_BadDB(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, &Program{},
		ThatYle("-db", "/a/bad/path/db").WithStdin("foo\n").
			WritesStdout("foo\n").
			WritesStderrContaining("History will not be saved."),
	)
}

func TestShell_BadCompDebug(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, &Program{},
		ThatYle("-db", "db", "-compdebug", "/a/bad/path").
			WritesStderrContaining("Warning: cannot open completion trace file"),
	)
}

func TestShell_BadUsage(t *testing.T) {
	Test(t, &Program{},
		ThatYle("foo").ExitsWith(2).
			WritesStderrContaining("arguments are not allowed\nUsage:"),
	)
}
