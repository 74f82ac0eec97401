// Package sys provides system utilities.
//
// The subpackage eunix provides utilities specific to Unix.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
