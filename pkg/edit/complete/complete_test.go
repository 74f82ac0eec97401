package complete

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/logutil"
)

// bufferOf returns a buffer whose content is s with the dot at the position
// of the first '|' in s.
func bufferOf(s string) *linebuf.Buffer {
	i := strings.IndexRune(s, '|')
	b := linebuf.New(s[:i] + s[i+1:])
	b.SetDot(len([]rune(s[:i])))
	return b
}

func notate(b *linebuf.Buffer) string {
	return b.Slice(0, b.Dot()) + "|" + b.Slice(b.Dot(), b.Len())
}

func words(kind Kind, values ...string) Generator {
	return GeneratorFunc(func(Context) ([]Candidate, error) {
		cands := make([]Candidate, len(values))
		for i, v := range values {
			cands[i] = NewCandidate(kind, v, "")
		}
		return cands, nil
	})
}

func setup(s string, g Generator) (*Engine, *linebuf.Buffer) {
	buf := bufferOf(s)
	return New(buf, Config{Generator: g}), buf
}

func TestBegin_CommonPrefix(t *testing.T) {
	e, buf := setup("echo ap|", words(Word, "apple", "apply", "application"))
	if n := e.Begin(); n != 3 {
		t.Errorf("Begin() = %d, want 3", n)
	}
	if got := notate(buf); got != "echo appl|" {
		t.Errorf("buffer is %q, want %q", got, "echo appl|")
	}
	if got := e.CommonPrefix(); got != "appl" {
		t.Errorf("CommonPrefix() = %q, want appl", got)
	}
	if e.Selected() != NoSelection || !e.Active() {
		t.Errorf("want active completion with no selection")
	}
}

func TestBegin_SingleCandidate(t *testing.T) {
	e, buf := setup("echo f|", words(Word, "foo"))
	e.Begin()
	if got := notate(buf); got != "echo foo |" {
		t.Errorf("buffer is %q, want %q", got, "echo foo |")
	}
	if e.Active() {
		t.Errorf("completion still active after a single candidate")
	}
}

func TestBegin_SingleDir(t *testing.T) {
	e, buf := setup("cd b|", words(Dir, "bar"))
	e.Begin()
	if got := notate(buf); got != "cd bar/|" {
		t.Errorf("buffer is %q, want %q", got, "cd bar/|")
	}

	e, buf = setup("cd b|", words(Dir, "bar/"))
	e.Begin()
	if got := notate(buf); got != "cd bar/|" {
		t.Errorf("buffer is %q, want %q", got, "cd bar/|")
	}
}

func TestBegin_CommonPrefixOfDirs(t *testing.T) {
	e, buf := setup("cd ap|", words(Dir, "apple", "apply", "application"))
	e.Begin()
	if got := notate(buf); got != "cd appl|" {
		t.Errorf("buffer is %q, want %q", got, "cd appl|")
	}
	e.Cycle(1)
	if got := notate(buf); got != "cd apple/|" {
		t.Errorf("buffer is %q, want %q", got, "cd apple/|")
	}
	// Back to no selection.
	e.Cycle(-1)
	if got := notate(buf); got != "cd appl|" {
		t.Errorf("buffer is %q, want %q", got, "cd appl|")
	}
}

func TestBegin_EmptyDir(t *testing.T) {
	e, buf := setup("cd |", words(Dir, ""))
	e.Begin()
	if got := notate(buf); got != "cd |" {
		t.Errorf("buffer is %q, want %q", got, "cd |")
	}
}

func TestBegin_PendingBackslash(t *testing.T) {
	// The typed backslash is replaced by the quoted tail.
	e, buf := setup(`ls a\|`, words(Word, "a b"))
	e.Begin()
	if got, want := notate(buf), `ls a\ b |`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}

	e, buf = setup(`ls a\|`, words(Word, "ab", "ac"))
	e.Begin()
	if got, want := notate(buf), `ls a\|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	e.Cycle(1)
	if got, want := notate(buf), "ls ab|"; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	e.Cycle(-1)
	if got, want := notate(buf), `ls a\|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}

	e, buf = setup(`echo "a\|`, words(Word, "a$b"))
	e.Begin()
	if got, want := notate(buf), `echo "a\$b" |`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
}

func TestBegin_NoCandidate(t *testing.T) {
	e, buf := setup("echo x|y", words(Word))
	if n := e.Begin(); n != 0 {
		t.Errorf("Begin() = %d, want 0", n)
	}
	if got := notate(buf); got != "echo x|y" {
		t.Errorf("buffer changed to %q", got)
	}
	if !e.Active() || len(e.Candidates()) != 0 {
		t.Errorf("want active completion with an empty list")
	}
	// Cycling an empty list does nothing.
	e.Cycle(1)
	if got := notate(buf); got != "echo x|y" {
		t.Errorf("buffer changed to %q", got)
	}
}

func TestBegin_GeneratorFailure(t *testing.T) {
	var trace strings.Builder
	buf := bufferOf("ls a|")
	e := New(buf, Config{
		Generator: GeneratorFunc(func(Context) ([]Candidate, error) {
			return []Candidate{{Value: "abc"}}, errors.New("boom")
		}),
		Trace: logutil.Prefixed(&trace, "[compdebug] "),
	})
	if n := e.Begin(); n != 0 {
		t.Errorf("Begin() = %d, want 0", n)
	}
	if got := notate(buf); got != "ls a|" {
		t.Errorf("buffer changed to %q", got)
	}
	if !strings.Contains(trace.String(), "[compdebug] generator failed: boom\n") {
		t.Errorf("trace %q does not mention the failure", trace.String())
	}
}

func TestCycle(t *testing.T) {
	e, buf := setup("echo ap|", words(Word, "apple", "apply", "application"))
	e.Begin()
	for _, step := range []struct {
		offset int
		want   string
		sel    Selection
	}{
		{1, "echo apple|", Select(0)},
		{1, "echo apply|", Select(1)},
		{1, "echo application|", Select(2)},
		{1, "echo appl|", NoSelection},
		{-1, "echo application|", Select(2)},
		{-2, "echo apple|", Select(0)},
		{4, "echo apple|", Select(0)},
		{-10, "echo application|", Select(2)},
	} {
		e.Cycle(step.offset)
		if got := notate(buf); got != step.want {
			t.Errorf("after Cycle(%d), buffer is %q, want %q", step.offset, got, step.want)
		}
		if got := e.Selected(); got != step.sel {
			t.Errorf("after Cycle(%d), selection is %v, want %v", step.offset, got, step.sel)
		}
	}
}

func TestCycle_KeepsTextAfterCursor(t *testing.T) {
	e, buf := setup("echo ap| rest", words(Word, "apple", "apply"))
	e.Begin()
	e.Cycle(1)
	e.Cycle(1)
	if got := notate(buf); got != "echo apply| rest" {
		t.Errorf("buffer is %q, want %q", got, "echo apply| rest")
	}
}

func TestCycle_BeginsCompletion(t *testing.T) {
	e, buf := setup("echo ap|", words(Word, "apple", "apply"))
	e.Cycle(1)
	if got := notate(buf); got != "echo appl|" {
		t.Errorf("buffer is %q, want %q", got, "echo appl|")
	}
	if e.Selected() != NoSelection {
		t.Errorf("selection is %v, want none", e.Selected())
	}
}

func TestCycle_ClosedGroup(t *testing.T) {
	for n := 1; n <= 6; n++ {
		values := make([]string, n)
		for i := range values {
			values[i] = "x" + strings.Repeat("y", i)
		}
		for _, offset := range []int{-13, -7, -1, 0, 1, 2, 5, 7, 1 << 40} {
			e, buf := setup("echo x|", words(Word, append(values, "xz")...))
			e.Begin()
			e.Cycle(1)
			sel, before := e.Selected(), notate(buf)

			e.Cycle(offset)
			e.Cycle(-offset)
			if e.Selected() != sel || notate(buf) != before {
				t.Errorf("n=%d: Cycle(%d) then Cycle(%d) does not restore the state", n, offset, -offset)
			}

			e.Cycle(n + 2)
			if e.Selected() != sel || notate(buf) != before {
				t.Errorf("n=%d: Cycle by list length + 1 is not the identity", n)
			}
		}
	}
}

func TestQuoting(t *testing.T) {
	// Single quotes: the tail is quoted, and a chosen candidate is closed
	// before the space.
	e, buf := setup("echo 'abc|", words(Word, `abc"def'ghi`))
	e.Begin()
	if got, want := notate(buf), `echo 'abc"def'\''ghi' |`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}

	e, buf = setup(`echo "ab|`, words(Word, "ab$c", "ab d"))
	e.Begin()
	if got, want := notate(buf), `echo "ab|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	e.Cycle(1)
	if got, want := notate(buf), `echo "ab\$c"|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	e.Cycle(1)
	if got, want := notate(buf), `echo "ab d"|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}

	e, buf = setup(`echo a\ |`, words(Word, "a b;c", "a b&c"))
	e.Begin()
	if got, want := notate(buf), `echo a\ b|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	e.Cycle(-1)
	if got, want := notate(buf), `echo a\ b\&c|`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
}

func TestExpandAll(t *testing.T) {
	e, buf := setup("ls a| x", words(Word, "a b", "a*", "ab"))
	if n := e.ExpandAll(); n != 3 {
		t.Errorf("ExpandAll() = %d, want 3", n)
	}
	if got, want := notate(buf), `ls a\ b a\* ab | x`; got != want {
		t.Errorf("buffer is %q, want %q", got, want)
	}
	if e.Active() {
		t.Errorf("completion still active after ExpandAll")
	}

	e, buf = setup("ls a|", words(Word))
	e.ExpandAll()
	if got := notate(buf); got != "ls a|" {
		t.Errorf("buffer changed to %q", got)
	}
}

func TestCleanup(t *testing.T) {
	e, buf := setup("echo ap|", words(Word, "apple", "apply"))
	e.Cleanup()
	e.Begin()
	e.Cycle(1)
	e.Cleanup()
	if got := notate(buf); got != "echo apple|" {
		t.Errorf("Cleanup changed buffer to %q", got)
	}
	if e.Active() || e.Candidates() != nil {
		t.Errorf("candidates survive Cleanup")
	}
}

func TestTrace(t *testing.T) {
	var trace strings.Builder
	buf := bufferOf("ap|")
	e := New(buf, Config{
		Generator: words(Word, "apple", "apply", "application"),
		Trace:     logutil.Prefixed(&trace, "[compdebug] "),
	})
	e.Begin()
	want := `[compdebug] completion start
[compdebug] got 3 candidate(s)
[compdebug] candidate common prefix: "appl"
[compdebug] completion end
`
	if diff := cmp.Diff(want, trace.String()); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestOnChange(t *testing.T) {
	changes := 0
	buf := bufferOf("ap|")
	e := New(buf, Config{
		Generator: words(Word, "apple", "apply"),
		OnChange:  func() { changes++ },
	})
	e.Begin()
	e.Cycle(1)
	if changes != 2 {
		t.Errorf("OnChange called %d times, want 2", changes)
	}
}

func TestCommonPrefixLen(t *testing.T) {
	for _, test := range []struct {
		values []string
		want   int
	}{
		{[]string{"apple", "apply", "application"}, 4},
		{[]string{"same", "same"}, 4},
		{[]string{"abc", "xyz"}, 0},
		{[]string{"Abc", "abc"}, 0},
		{[]string{"only"}, 4},
		{[]string{"世界", "世人"}, 1},
		{[]string{"ab", "abc", ""}, 0},
	} {
		cands := make([]Candidate, len(test.values))
		for i, v := range test.values {
			cands[i] = Candidate{Value: v}
		}
		if got := CommonPrefixLen(cands); got != test.want {
			t.Errorf("CommonPrefixLen(%q) = %d, want %d", test.values, got, test.want)
		}
	}
}

func TestNewCandidate(t *testing.T) {
	for _, test := range []struct {
		value, raw string
		width      int
	}{
		{"foo", "", 3},
		{"dir/世界", "世界", 4},
		{"", "", 0},
	} {
		c := NewCandidate(File, test.value, test.raw)
		if c.Width != test.width {
			t.Errorf("width of %q is %d, want %d", c.Display(), c.Width, test.width)
		}
	}
}
