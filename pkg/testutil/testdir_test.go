package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.yle.sh/pkg/must"
)

// cleanuper records cleanup functions so that tests can run them at a chosen
// point.
type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_CleanupRemovesDir(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	must.WriteFile(filepath.Join(dir, "a"), "test")

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir_RestoresWd(t *testing.T) {
	original := must.OK1(os.Getwd())

	c := &cleanuper{}
	dir := InTempDir(c)
	if wd := must.OK1(os.Getwd()); wd != dir {
		t.Errorf("pwd is %q, want %q", wd, dir)
	}

	c.runCleanups()
	if wd := must.OK1(os.Getwd()); wd != original {
		t.Errorf("pwd restored to %q, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{
			"d1": "d1 content",
			"dd": Dir{"dd1": "dd1 content"},
		},
	})

	for name, want := range map[string]string{
		"a": "a content", "d/d1": "d1 content", "d/dd/dd1": "dd1 content",
	} {
		if got := must.ReadFileString(name); got != want {
			t.Errorf("content of %s is %q, want %q", name, got, want)
		}
	}
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("x = %d after Set, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("x = %d after cleanup, want 1", x)
	}
}
