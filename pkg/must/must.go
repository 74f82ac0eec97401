// Package must contains simple functions that panic on errors.
//
// It is only used in tests and in places where errors are provably
// impossible.
package must

import (
	"os"
	"path/filepath"
)

// OK panics if the error value is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 panics if the error value is not nil, and returns v otherwise.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 panics if the error value is not nil, and returns v1 and v2 otherwise.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) {
	return OK2(os.Pipe())
}

// Chdir wraps os.Chdir.
func Chdir(dir string) {
	OK(os.Chdir(dir))
}

// ReadFileString reads a whole file as a string.
func ReadFileString(fname string) string {
	return string(OK1(os.ReadFile(fname)))
}

// MkdirAll calls os.MkdirAll for each argument.
func MkdirAll(names ...string) {
	for _, name := range names {
		OK(os.MkdirAll(name, 0700))
	}
}

// WriteFile writes data to a file, after creating all ancestor directories
// that don't exist.
func WriteFile(filename, data string) {
	MkdirAll(filepath.Dir(filename))
	OK(os.WriteFile(filename, []byte(data), 0600))
}
