package term

import "io"

// TTY reads keys from and draws on a terminal.
type TTY struct {
	*Reader
	*Writer
}

// NewTTY creates a TTY reading from in and writing to out. The width
// function is passed to NewWriter.
func NewTTY(in io.Reader, out io.Writer, width func() int) *TTY {
	return &TTY{NewReader(in), NewWriter(out, width)}
}
