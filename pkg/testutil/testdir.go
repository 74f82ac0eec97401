package testutil

import (
	"os"
	"path/filepath"

	"src.yle.sh/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. The path has all symlinks resolved, so that it can
// be compared with paths obtained from os.Getwd.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "yletest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when the test finishes. It returns
// the path of the temporary directory.
func InTempDir(c Cleanuper) string {
	tmpDir := TempDir(c)
	Chdir(c, tmpDir)
	return tmpDir
}

// Chdir changes into a directory, and restores the original working directory
// when the test finishes. It returns the directory for easier chaining.
func Chdir(c Cleanuper, dir string) string {
	oldWd := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(oldWd) })
	return dir
}

// Dir describes the layout of a directory. The keys of the map represent
// filenames. Each value is either a string (for the content of a regular
// file) or a Dir (for the content of a subdirectory).
type Dir map[string]any

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(dir Dir) {
	applyDir(dir, "")
}

func applyDir(dir Dir, prefix string) {
	for name, file := range dir {
		path := filepath.Join(prefix, name)
		switch file := file.(type) {
		case string:
			must.WriteFile(path, file)
		case Dir:
			must.MkdirAll(path)
			applyDir(file, path)
		default:
			panic("file is neither string nor Dir")
		}
	}
}
